package character

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cameo/pkg/inference"
	"cameo/pkg/schema"
)

func allSentinels() schema.Profile {
	return schema.Profile{
		Background:      schema.NotAvailable,
		NotableWorks:    schema.NotAvailable,
		Occupation:      schema.NotAvailable,
		FirstAppearance: schema.NotAvailable,
		Era:             schema.UnknownEra,
	}
}

func TestNormalizeArguments_MalformedPayloads(t *testing.T) {
	cases := []struct {
		name string
		args any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"truncated json", `{"background": "Physic`},
		{"not an object", `["a","b"]`},
		{"json null", `null`},
		{"garbage", `}}{{`},
		{"unsupported type", 42},
		{"nil map", map[string]any(nil)},
		{"raw message", json.RawMessage(`{"background":`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				require.Equal(t, allSentinels(), NormalizeArguments(tc.args))
			})
		})
	}
}

func TestNormalizeArguments_MissingFieldsUseSentinels(t *testing.T) {
	p := NormalizeArguments(`{"occupation":"Physicist","background":"Born in Ulm."}`)
	require.Equal(t, schema.Profile{
		Background:      "Born in Ulm.",
		NotableWorks:    schema.NotAvailable,
		Occupation:      "Physicist",
		FirstAppearance: schema.NotAvailable,
		Era:             schema.UnknownEra,
	}, p)
}

func TestNormalizeArguments_Coercion(t *testing.T) {
	p := NormalizeArguments(map[string]any{
		"background":       "   ",
		"notable_works":    []any{" Relativity ", "", nil, "Photoelectric Effect", "  "},
		"occupation":       nil,
		"first_appearance": 1879.0,
		"era":              true,
		"extra":            "ignored",
	})
	require.Equal(t, schema.NotAvailable, p.Background)
	require.Equal(t, "Relativity, Photoelectric Effect", p.NotableWorks)
	require.Equal(t, schema.NotAvailable, p.Occupation)
	require.Equal(t, "1879", p.FirstAppearance)
	require.Equal(t, "true", p.Era)
}

func TestNormalizeArguments_EmptyListYieldsSentinel(t *testing.T) {
	p := NormalizeArguments(map[string]any{
		"notable_works": []any{"", "  "},
		"era":           []any{},
	})
	require.Equal(t, schema.NotAvailable, p.NotableWorks)
	require.Equal(t, schema.UnknownEra, p.Era)
}

func TestNormalizeArguments_StringSliceAndObjects(t *testing.T) {
	p := NormalizeArguments(map[string]any{
		"notable_works": []string{"Hamlet", " Macbeth "},
		"occupation":    map[string]any{"primary": "Playwright"},
	})
	require.Equal(t, "Hamlet, Macbeth", p.NotableWorks)
	require.Equal(t, `{"primary":"Playwright"}`, p.Occupation)
}

func TestNormalizeArguments_BackgroundIsBounded(t *testing.T) {
	long := strings.Repeat("é", schema.MaxBackgroundRunes+50)
	p := NormalizeArguments(map[string]any{"background": long})
	require.Equal(t, schema.MaxBackgroundRunes, len([]rune(p.Background)))
}

func TestNormalize_UnknownTool(t *testing.T) {
	results := Normalizer{}.Normalize([]inference.ToolCall{
		{ID: "call_9", Name: "get_weather", Arguments: `{}`},
		{ID: "call_1", Name: schema.ProfileToolName, Arguments: `{"occupation":"Detective"}`},
	})
	require.Len(t, results, 2)

	require.Nil(t, results[0].Profile)
	require.Equal(t, "call_9", results[0].CallID)
	require.Equal(t, "Tool 'get_weather' not found", results[0].Error)
	require.JSONEq(t, `{"error":"Tool 'get_weather' not found"}`, results[0].Content())

	require.NotNil(t, results[1].Profile)
	require.Equal(t, "Detective", results[1].Profile.Occupation)
	require.Empty(t, results[1].Error)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(results[1].Content()), &decoded))
	require.Equal(t, "Detective", decoded["occupation"])
}

func TestNormalize_NoCalls(t *testing.T) {
	require.Empty(t, Normalizer{}.Normalize(nil))
}

func TestNormalize_Strict(t *testing.T) {
	n := Normalizer{Strict: true}

	results := n.Normalize([]inference.ToolCall{{
		ID:        "call_1",
		Name:      schema.ProfileToolName,
		Arguments: `{"background":"b","notable_works":["x"],"occupation":"o","first_appearance":"f","era":"e"}`,
	}})
	require.Len(t, results, 1)
	require.Nil(t, results[0].Profile)
	require.Contains(t, results[0].Error, "notable_works")

	results = n.Normalize([]inference.ToolCall{{
		ID:        "call_2",
		Name:      schema.ProfileToolName,
		Arguments: `{"background":"b","notable_works":"x","occupation":"o","first_appearance":"f","era":"e"}`,
	}})
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Profile)
	require.Equal(t, schema.Profile{
		Background:      "b",
		NotableWorks:    "x",
		Occupation:      "o",
		FirstAppearance: "f",
		Era:             "e",
	}, *results[0].Profile)
}

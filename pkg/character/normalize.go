package character

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"unicode/utf8"

	"cameo/pkg/inference"
	"cameo/pkg/schema"
)

// Normalizer converts raw tool calls into Profiles without failing on
// malformed input. In Strict mode every field must be present as a string
// and any gap turns the call into an error payload instead.
type Normalizer struct {
	Strict bool
}

// Normalize resolves each call against the registry, in order.
func (n Normalizer) Normalize(calls []inference.ToolCall) []ToolResult {
	results := make([]ToolResult, 0, len(calls))
	for _, call := range calls {
		result := ToolResult{CallID: call.ID, Name: call.Name}

		handler, ok := registry[call.Name]
		if !ok {
			result.Error = fmt.Sprintf("Tool '%s' not found", call.Name)
			results = append(results, result)
			continue
		}

		profile, err := handler(n, parseArguments(call.Arguments))
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Profile = &profile
		}
		results = append(results, result)
	}
	return results
}

// NormalizeArguments coerces an argument payload of any shape into a Profile.
func NormalizeArguments(raw any) schema.Profile {
	return coerceProfile(parseArguments(raw))
}

func (n Normalizer) profile(args map[string]any) (schema.Profile, error) {
	if n.Strict {
		return strictProfile(args)
	}
	return coerceProfile(args), nil
}

// missing marks a field the model left out.
type missing struct{}

func defaults() map[string]any {
	out := make(map[string]any, len(schema.ProfileFields))
	for _, field := range schema.ProfileFields {
		out[field] = missing{}
	}
	return out
}

func parseArguments(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		if v == nil {
			return map[string]any{}
		}
		return v
	case string:
		return decodeObject([]byte(v))
	case json.RawMessage:
		return decodeObject(v)
	case []byte:
		return decodeObject(v)
	default:
		return map[string]any{}
	}
}

func decodeObject(data []byte) map[string]any {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

func coerceProfile(args map[string]any) schema.Profile {
	merged := defaults()
	maps.Copy(merged, args)

	fields := make(map[string]string, len(schema.ProfileFields))
	for _, field := range schema.ProfileFields {
		fields[field] = coerceText(merged[field], schema.Sentinel(field))
	}

	p := schema.ProfileFromFields(fields)
	p.Background = limitRunes(p.Background, schema.MaxBackgroundRunes)
	return p
}

func strictProfile(args map[string]any) (schema.Profile, error) {
	fields := make(map[string]string, len(schema.ProfileFields))
	for _, field := range schema.ProfileFields {
		s, ok := args[field].(string)
		if !ok {
			return schema.Profile{}, fmt.Errorf("missing required field '%s'", field)
		}
		fields[field] = s
	}
	p := schema.ProfileFromFields(fields)
	p.Background = limitRunes(p.Background, schema.MaxBackgroundRunes)
	return p, nil
}

func coerceText(v any, sentinel string) string {
	switch x := v.(type) {
	case nil, missing:
		return sentinel
	case string:
		return cmp.Or(strings.TrimSpace(x), sentinel)
	case []any:
		return joinItems(x, sentinel)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return joinItems(items, sentinel)
	default:
		return cmp.Or(strings.TrimSpace(textOf(x)), sentinel)
	}
}

func joinItems(items []any, sentinel string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if s := strings.TrimSpace(textOf(item)); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return sentinel
	}
	return strings.Join(parts, ", ")
}

func textOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case map[string]any, []any:
		bin, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(bin)
	default:
		return fmt.Sprint(x)
	}
}

func limitRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

package character

import (
	"encoding/json"

	"cameo/pkg/schema"
)

// toolHandler turns parsed arguments into a Profile. A returned error becomes
// the call's error payload.
type toolHandler func(Normalizer, map[string]any) (schema.Profile, error)

// registry is the closed set of tools the model may call.
var registry = map[string]toolHandler{
	schema.ProfileToolName: Normalizer.profile,
}

// ToolResult is the outcome of one tool call. Exactly one of Profile and
// Error is set.
type ToolResult struct {
	CallID  string
	Name    string
	Profile *schema.Profile
	Error   string
}

// Content renders the result the way a tool message would carry it.
func (r ToolResult) Content() string {
	var v any = map[string]string{"error": r.Error}
	if r.Profile != nil {
		v = r.Profile
	}
	bin, _ := json.Marshal(v)
	return string(bin)
}

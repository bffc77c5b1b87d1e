package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Tool is a callable function declared to the model.
type Tool struct {
	Name        string
	Description string
	// Parameters is a JSON schema object describing the arguments.
	Parameters map[string]any
}

const ProfileToolName = "get_character_profile_information"

func generateSchema[T any]() map[string]any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	bin, err := json.Marshal(r.Reflect(v))
	if err != nil {
		panic(err)
	}

	var out map[string]any
	if err := json.Unmarshal(bin, &out); err != nil {
		panic(err)
	}
	// vendors reject meta keys inside function parameters
	delete(out, "$schema")
	delete(out, "$id")
	return out
}

var ProfileSchema = generateSchema[Profile]()

// ProfileTool instructs the model to answer with exactly the Profile shape.
func ProfileTool() Tool {
	return Tool{
		Name:        ProfileToolName,
		Description: "Get the character's information like the background, notable works, occupation, first appearance, and era",
		Parameters:  ProfileSchema,
	}
}

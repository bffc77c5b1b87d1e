package schema

// Sentinels substituted for missing or unusable profile data.
const (
	NotAvailable = "N/A"
	UnknownEra   = "Unknown"
)

// MaxBackgroundRunes bounds Profile.Background.
const MaxBackgroundRunes = 1000

// Profile is the five-field factual record about a character.
type Profile struct {
	Background      string `json:"background" jsonschema:"maxLength=1000" jsonschema_description:"Background or the summary of information about the character; factual; 1000 characters at most."`
	NotableWorks    string `json:"notable_works" jsonschema_description:"A concise summary of the character's most notable achievements, contributions, or works (e.g. Theory of Special Relativity, Photoelectric Effect)."`
	Occupation      string `json:"occupation" jsonschema:"example=Theoretical Physicist" jsonschema_description:"The primary profession, role, or title of the character."`
	FirstAppearance string `json:"first_appearance" jsonschema:"example=Action Comics #1 (1938)" jsonschema_description:"The date, year, or title of the work/event where the character first appeared or was introduced. This can be a publication, film, historical record, or other medium."`
	Era             string `json:"era" jsonschema:"example=19th Century (1879–1955)" jsonschema_description:"The historical or fictional time period in which the character lived or was most active, including the range of years. Strictly follow the format in the example."`
}

// Profile field names, in declaration order. The tool schema's required list
// and the normalizer's defaults table are both derived from this slice.
const (
	FieldBackground      = "background"
	FieldNotableWorks    = "notable_works"
	FieldOccupation      = "occupation"
	FieldFirstAppearance = "first_appearance"
	FieldEra             = "era"
)

var ProfileFields = []string{
	FieldBackground,
	FieldNotableWorks,
	FieldOccupation,
	FieldFirstAppearance,
	FieldEra,
}

// Sentinel returns the placeholder used when field has no usable value.
func Sentinel(field string) string {
	if field == FieldEra {
		return UnknownEra
	}
	return NotAvailable
}

// Unavailable is the profile returned when the model declines to call the tool.
func Unavailable() Profile {
	return Profile{
		Background:      NotAvailable,
		NotableWorks:    NotAvailable,
		Occupation:      NotAvailable,
		FirstAppearance: NotAvailable,
		Era:             NotAvailable,
	}
}

// ProfileFromFields builds a Profile from a field-name keyed map.
// Absent keys leave the corresponding field empty.
func ProfileFromFields(fields map[string]string) Profile {
	return Profile{
		Background:      fields[FieldBackground],
		NotableWorks:    fields[FieldNotableWorks],
		Occupation:      fields[FieldOccupation],
		FirstAppearance: fields[FieldFirstAppearance],
		Era:             fields[FieldEra],
	}
}

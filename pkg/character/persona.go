package character

import "strings"

// Mode is the persona the assistant speaks with.
type Mode string

const (
	// ModeCharacter impersonates the character in the first person.
	ModeCharacter Mode = "character"
	// ModeNarrator describes the character factually in the third person.
	ModeNarrator Mode = "narrator"
)

// SelectMode picks character mode when the speaking role names the character
// itself, ignoring case and surrounding whitespace.
func SelectMode(characterName, role string) Mode {
	if strings.EqualFold(strings.TrimSpace(characterName), strings.TrimSpace(role)) {
		return ModeCharacter
	}
	return ModeNarrator
}

/*
Package roster holds the breakout-room roster: rooms with ordered participant lists,
the pool of available participants, and the teacher, who is tracked by a room pointer
instead of list membership.

Every engine operation is a pure function from State to State. The Store serializes
those operations for concurrent callers.
*/
package roster

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownInitials is shown when no name is available.
const UnknownInitials = "??"

// Participant is a person in the classroom. FullName is the identity; names are unique.
type Participant struct {
	FullName string `json:"fullName"`
	Initials string `json:"initials"`
}

// NewParticipant builds a Participant, deriving initials when none are supplied.
func NewParticipant(fullName, initials string) Participant {
	if initials == "" {
		initials = DeriveInitials(fullName)
	}

	return Participant{
		FullName: fullName,
		Initials: initials,
	}
}

// DeriveInitials abbreviates a full name for avatars.
//
//	"Alice Anderson" -> "AA"   first rune of first and last token, upper-cased
//	"Bob"            -> "Bo"   single token: first rune upper-cased, second as-is
//	"X"              -> "X"
//	"" or blank      -> "??"
func DeriveInitials(fullName string) string {
	tokens := strings.Fields(fullName)

	switch len(tokens) {
	case 0:
		return UnknownInitials
	case 1:
		first, size := utf8.DecodeRuneInString(tokens[0])
		initials := string(unicode.ToUpper(first))

		if second, _ := utf8.DecodeRuneInString(tokens[0][size:]); second != utf8.RuneError {
			initials += string(second)
		}
		return initials
	default:
		first, _ := utf8.DecodeRuneInString(tokens[0])
		last, _ := utf8.DecodeRuneInString(tokens[len(tokens)-1])
		return strings.ToUpper(string(first) + string(last))
	}
}

// internal/moderation/quickfilter.go
package moderation

import (
	"strings"
)

type FilterReason string

const (
	ReasonTooShort   FilterReason = "TooShort"
	ReasonDisallowed FilterReason = "Disallowed"
	ReasonTooGeneric FilterReason = "TooGeneric"
)

// bannedWords is matched as a case-insensitive substring anywhere in the
// message.
var bannedWords = []string{
	"stupid", "idiot", "ugly", "hate", "fuck", "shit", "damn", "bitch", "ass", "bastard",
}

// genericPhrases reject one- or two-word messages that are just a throwaway
// adjective.
var genericPhrases = map[string]bool{
	"nice":    true,
	"cool":    true,
	"good":    true,
	"ok":      true,
	"okay":    true,
	"great":   true,
	"awesome": true,
}

// FilterVerdict is the result of the local pre-moderation check. Message is
// the user-facing explanation shown inline in the form.
type FilterVerdict struct {
	Valid   bool
	Reason  FilterReason
	Message string
}

// QuickFilter is the synchronous rule-based gate that runs before any network
// call. Pure function: no I/O, no state. The more specific diagnoses win:
// a banned word beats everything, a bare generic phrase beats the word-count
// floor.
func QuickFilter(text string) FilterVerdict {
	lower := strings.ToLower(text)
	for _, word := range bannedWords {
		if strings.Contains(lower, word) {
			return FilterVerdict{
				Reason:  ReasonDisallowed,
				Message: "Please keep your message positive and respectful!",
			}
		}
	}

	words := strings.Fields(strings.TrimSpace(lower))
	if len(words) <= 2 && genericPhrases[strings.Join(words, " ")] {
		return FilterVerdict{
			Reason:  ReasonTooGeneric,
			Message: "Be more specific! What exactly did you appreciate?",
		}
	}

	if len(words) < 5 {
		return FilterVerdict{
			Reason:  ReasonTooShort,
			Message: "Please write at least 5 words for a meaningful compliment!",
		}
	}

	return FilterVerdict{Valid: true}
}

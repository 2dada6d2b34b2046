// Package voice turns free-text transcripts into workout counter commands and
// streams transcripts from an optional speech-to-text source.
package voice

import (
	"strings"
	"unicode"
)

// Command is a classified voice instruction.
type Command int

const (
	Unrecognized Command = iota
	IncrementRep
	CompleteSet
	Reset
)

func (c Command) String() string {
	switch c {
	case IncrementRep:
		return "increment_rep"
	case CompleteSet:
		return "complete_set"
	case Reset:
		return "reset"
	default:
		return "unrecognized"
	}
}

var (
	resetPhrases = [][]string{{"reset"}, {"start", "over"}}
	setPhrases   = [][]string{{"set"}, {"sets"}, {"next", "set"}}
	repPhrases   = [][]string{{"rep"}, {"reps"}, {"one"}, {"1"}}
)

// Classify maps a transcript to a Command by whole-word matching. Reset is
// checked first, then set, then rep, so "reset" never reads as "set" and
// "done" never reads as "one".
func Classify(text string) Command {
	words := tokenize(text)
	if len(words) == 0 {
		return Unrecognized
	}
	switch {
	case containsAny(words, resetPhrases):
		return Reset
	case containsAny(words, setPhrases):
		return CompleteSet
	case containsAny(words, repPhrases):
		return IncrementRep
	}
	return Unrecognized
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsAny(words []string, phrases [][]string) bool {
	for _, p := range phrases {
		if containsPhrase(words, p) {
			return true
		}
	}
	return false
}

func containsPhrase(words, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, w := range phrase {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

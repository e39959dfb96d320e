package domain

import "strings"

// Step is one element of a run trace.
// The first element of a trace has an empty Consumed symbol and the full word as Remaining.
type Step struct {
	State     string   `json:"state"`
	Consumed  string   `json:"consumed"`
	Remaining []string `json:"remaining"`
}

// SplitWord turns a string into a word of single-rune symbols.
// "1101" becomes ["1", "1", "0", "1"]; the empty string is the empty word.
func SplitWord(s string) []string {
	word := make([]string, 0, len(s))
	for _, r := range s {
		word = append(word, string(r))
	}
	return word
}

// JoinWord concatenates symbols back into a single string for display.
func JoinWord(word []string) string {
	return strings.Join(word, "")
}

// Outcome is the result of running a whole word.
type Outcome struct {
	State     string `json:"state"`
	Accepting bool   `json:"accepting"`
}

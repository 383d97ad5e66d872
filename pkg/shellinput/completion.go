package shellinput

import (
	"strings"
	"unicode/utf8"
)

// CompletionCandidate represents a single completion suggestion
type CompletionCandidate struct {
	Value       string // The text that replaces the input when accepted
	Display     string // What to show in the list (if different from Value)
	Description string // The description to show in the right column
	Suffix      string // Optional greyed-out inline hint
}

// Label returns the text a list should show for the candidate.
func (c CompletionCandidate) Label() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Value
}

// CompletionProvider is the interface that provides completion suggestions
type CompletionProvider interface {
	// GetCompletions returns a list of completion suggestions for the current input
	// line and cursor position
	GetCompletions(line string, pos int) []CompletionCandidate

	// GetHelpInfo returns help information for whatever is under the cursor.
	// Returns empty string if no help is available
	GetHelpInfo(line string, pos int) string
}

// CompletionState tracks cycling through a set of completion suggestions.
type CompletionState struct {
	active       bool
	suggestions  []CompletionCandidate
	selected     int
	originalText string // the input before completion started
}

// NewCompletionState returns an inactive state.
func NewCompletionState() *CompletionState {
	return &CompletionState{selected: -1}
}

// Start activates completion over the given suggestions. Nothing is selected
// until the first call to Next or Prev.
func (cs *CompletionState) Start(originalText string, suggestions []CompletionCandidate) {
	cs.active = len(suggestions) > 0
	cs.suggestions = suggestions
	cs.selected = -1
	cs.originalText = originalText
}

func (cs *CompletionState) Reset() {
	cs.active = false
	cs.suggestions = nil
	cs.selected = -1
	cs.originalText = ""
}

func (cs *CompletionState) Active() bool {
	return cs.active
}

func (cs *CompletionState) Suggestions() []CompletionCandidate {
	return cs.suggestions
}

// Selected returns the index of the selected suggestion, or -1.
func (cs *CompletionState) Selected() int {
	return cs.selected
}

func (cs *CompletionState) Next() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected = (cs.selected + 1) % len(cs.suggestions)
	return cs.suggestions[cs.selected].Value
}

func (cs *CompletionState) Prev() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected--
	if cs.selected < 0 {
		cs.selected = len(cs.suggestions) - 1
	}
	return cs.suggestions[cs.selected].Value
}

func (cs *CompletionState) Current() string {
	if !cs.active || cs.selected < 0 || cs.selected >= len(cs.suggestions) {
		return ""
	}
	return cs.suggestions[cs.selected].Value
}

// HasMultiple returns true if there are multiple completion options
func (cs *CompletionState) HasMultiple() bool {
	return len(cs.suggestions) > 1
}

// Cancel restores the original text and resets state
func (cs *CompletionState) Cancel() string {
	originalText := cs.originalText
	cs.Reset()
	return originalText
}

// CommonPrefix returns the longest prefix shared by the Value of every candidate.
func CommonPrefix(candidates []CompletionCandidate) string {
	if len(candidates) == 0 {
		return ""
	}
	prefix := candidates[0].Value
	for _, c := range candidates[1:] {
		for !strings.HasPrefix(c.Value, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
		if prefix == "" {
			break
		}
	}
	return prefix
}

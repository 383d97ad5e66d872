package completion

import (
	"context"
	"strings"

	"github.com/robottwo/webjump/pkg/shellinput"
)

// StaticCompleter completes a webjump argument from a fixed word list.
type StaticCompleter struct {
	candidates []shellinput.CompletionCandidate
}

func NewStaticCompleter(words ...string) *StaticCompleter {
	s := &StaticCompleter{}
	for _, w := range words {
		s.register(w, "")
	}
	return s
}

// Add appends a word with an optional description.
func (s *StaticCompleter) Add(word, description string) {
	s.register(word, description)
}

func (s *StaticCompleter) register(word, description string) {
	if word == "" {
		return
	}
	s.candidates = append(s.candidates, shellinput.CompletionCandidate{
		Value:       word,
		Description: description,
	})
}

func (s *StaticCompleter) Len() int {
	return len(s.candidates)
}

// Complete returns the words that start with arg[:pos]. In conservative mode
// an empty prefix yields nothing rather than the whole list.
func (s *StaticCompleter) Complete(ctx context.Context, arg string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := arg[:clamp(pos, len(arg))]
	if conservative && prefix == "" {
		return nil, nil
	}

	filtered := make([]shellinput.CompletionCandidate, 0)
	for _, c := range s.candidates {
		if strings.HasPrefix(c.Value, prefix) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func clamp(pos, n int) int {
	return max(0, min(pos, n))
}

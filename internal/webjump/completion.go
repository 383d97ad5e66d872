package webjump

import (
	"context"
	"errors"
	"strings"

	"github.com/robottwo/webjump/pkg/shellinput"
	"go.uber.org/zap"
)

// Completions returns completion candidates for input with the cursor at pos.
//
// Once the line names a webjump and has moved past the name into an argument,
// completion is delegated to the webjump's ArgumentCompleter, if it has one,
// and the delegate's candidates are returned nested under "key ". In every
// other case the candidates are the webjump names that extend input[:pos].
// A missing required argument never surfaces as an error here.
func (r *Registry) Completions(ctx context.Context, input string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error) {
	pos = max(0, min(pos, len(input)))
	prefix := input[:pos]

	m, err := r.Match(prefix)
	if err != nil {
		if !errors.Is(err, ErrMissingArgument) {
			return nil, err
		}
		m = nil
	}

	if m != nil && m.HasArgument && m.Definition.Completer != nil {
		offset := pos - len(m.Key) - 1
		candidates, err := m.Definition.Completer.Complete(ctx, m.Argument, offset, conservative)
		if err != nil {
			r.logger.Debug("argument completer failed", zap.String("key", m.Definition.Key), zap.Error(err))
			return nil, err
		}
		return nestCompletions(candidates, m.Definition.Key+" "), nil
	}

	return r.nameCompletions(prefix), nil
}

func (r *Registry) nameCompletions(prefix string) []shellinput.CompletionCandidate {
	candidates := make([]shellinput.CompletionCandidate, 0)
	for _, def := range r.Definitions() {
		s := def.CompletionString()
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		candidates = append(candidates, shellinput.CompletionCandidate{
			Value:       s,
			Description: def.Description,
		})
	}
	return candidates
}

func nestCompletions(candidates []shellinput.CompletionCandidate, prefix string) []shellinput.CompletionCandidate {
	nested := make([]shellinput.CompletionCandidate, len(candidates))
	for i, c := range candidates {
		c.Value = prefix + c.Value
		if c.Display != "" {
			c.Display = prefix + c.Display
		}
		nested[i] = c
	}
	return nested
}

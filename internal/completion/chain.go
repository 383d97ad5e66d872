package completion

import (
	"context"

	"github.com/robottwo/webjump/internal/webjump"
	"github.com/robottwo/webjump/pkg/shellinput"
	"github.com/samber/lo"
)

// Chain merges the candidates of several completers in order, dropping
// repeated values. The first completer error aborts the chain.
type Chain []webjump.ArgumentCompleter

func (c Chain) Complete(ctx context.Context, arg string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error) {
	var all []shellinput.CompletionCandidate
	for _, completer := range c {
		candidates, err := completer.Complete(ctx, arg, pos, conservative)
		if err != nil {
			return nil, err
		}
		all = append(all, candidates...)
	}
	return lo.UniqBy(all, func(c shellinput.CompletionCandidate) string {
		return c.Value
	}), nil
}

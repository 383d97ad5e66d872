package completion

import (
	"context"

	"github.com/robottwo/webjump/pkg/shellinput"
	"github.com/samber/lo"
)

// ArgumentHistory looks up arguments previously given to a webjump.
type ArgumentHistory interface {
	RecentArguments(webjump, prefix string, limit int) ([]string, error)
}

const defaultHistoryLimit = 20

// HistoryCompleter completes a webjump argument from the jump history.
type HistoryCompleter struct {
	history ArgumentHistory
	webjump string
	limit   int
}

func NewHistoryCompleter(history ArgumentHistory, webjump string, limit int) *HistoryCompleter {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &HistoryCompleter{
		history: history,
		webjump: webjump,
		limit:   limit,
	}
}

func (h *HistoryCompleter) Complete(ctx context.Context, arg string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := arg[:clamp(pos, len(arg))]
	if conservative && prefix == "" {
		return nil, nil
	}

	arguments, err := h.history.RecentArguments(h.webjump, prefix, h.limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(arguments, func(a string, _ int) shellinput.CompletionCandidate {
		return shellinput.CompletionCandidate{Value: a, Description: "history"}
	}), nil
}

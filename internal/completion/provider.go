package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robottwo/webjump/internal/webjump"
	"github.com/robottwo/webjump/pkg/shellinput"
	"go.uber.org/zap"
)

const defaultTimeout = 2 * time.Second

// WebjumpCompletionProvider implements shellinput.CompletionProvider on top
// of a webjump registry.
type WebjumpCompletionProvider struct {
	Registry     *webjump.Registry
	Conservative bool
	Timeout      time.Duration

	logger *zap.Logger
}

// NewWebjumpCompletionProvider creates a new WebjumpCompletionProvider
func NewWebjumpCompletionProvider(registry *webjump.Registry, conservative bool, logger *zap.Logger) *WebjumpCompletionProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebjumpCompletionProvider{
		Registry:     registry,
		Conservative: conservative,
		Timeout:      defaultTimeout,
		logger:       logger,
	}
}

// GetCompletions returns completion suggestions for the current input line.
// Completer failures are logged and produce no suggestions.
func (p *WebjumpCompletionProvider) GetCompletions(line string, pos int) []shellinput.CompletionCandidate {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()

	candidates, err := p.Complete(ctx, line, pos)
	if err != nil {
		p.logger.Debug("completion failed", zap.String("line", line), zap.Error(err))
		return make([]shellinput.CompletionCandidate, 0)
	}
	return candidates
}

// Complete is GetCompletions with an explicit context and error.
func (p *WebjumpCompletionProvider) Complete(ctx context.Context, line string, pos int) ([]shellinput.CompletionCandidate, error) {
	return p.Registry.Completions(ctx, line, pos, p.Conservative)
}

// GetHelpInfo describes the webjump named before the cursor.
func (p *WebjumpCompletionProvider) GetHelpInfo(line string, pos int) string {
	pos = clamp(pos, len(line))
	m, err := p.Registry.Match(line[:pos])
	if err != nil {
		var missing *webjump.MissingArgumentError
		if errors.As(err, &missing) {
			if def, ok := p.Registry.Get(missing.Key); ok {
				return describe(def) + "\n\nThis webjump requires an argument."
			}
		}
		return ""
	}
	if m == nil {
		return p.ambiguityHelp(line[:pos])
	}

	help := describe(m.Definition)
	if m.HasArgument {
		help += "\n\nOpens " + m.URL()
	}
	return help
}

func (p *WebjumpCompletionProvider) ambiguityHelp(prefix string) string {
	name, _, _ := strings.Cut(prefix, " ")
	if name == "" || !p.Registry.PartialMatch() {
		return ""
	}
	var matches []string
	for _, key := range p.Registry.Keys() {
		if strings.HasPrefix(key, name) {
			matches = append(matches, key)
		}
	}
	if len(matches) < 2 {
		return ""
	}
	return fmt.Sprintf("**%s** is ambiguous: %s", name, strings.Join(matches, ", "))
}

func describe(def *webjump.Definition) string {
	var sb strings.Builder
	sb.WriteString("**" + def.Key + "**")
	if def.Description != "" {
		sb.WriteString(" - " + def.Description)
	}
	if def.Template != "" {
		sb.WriteString("\n\nTemplate: " + def.Template)
	}
	if def.Alternative != "" {
		sb.WriteString("\nWithout argument: " + def.Alternative)
	}
	sb.WriteString("\nArgument: " + def.Argument.String())
	return sb.String()
}

package webjump

import (
	"errors"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Registry maps webjump names to definitions. It is not safe for concurrent
// mutation; concurrent reads are fine once registration is done.
type Registry struct {
	defs         map[string]*Definition
	partialMatch bool
	logger       *zap.Logger
}

// NewRegistry creates an empty registry with partial matching enabled.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		defs:         make(map[string]*Definition),
		partialMatch: true,
		logger:       logger,
	}
}

// PartialMatch reports whether unique prefixes of a name are accepted.
func (r *Registry) PartialMatch() bool {
	return r.partialMatch
}

// SetPartialMatch toggles acceptance of unique-prefix matches.
func (r *Registry) SetPartialMatch(enabled bool) {
	r.partialMatch = enabled
}

// Define registers a webjump, replacing any existing one with the same key.
//
// When opts.Argument is ArgumentUnset the policy is derived: a HandlerFunc
// without an alternative requires an argument, a Template without a
// placeholder forbids one, and a Template with a placeholder gets its
// alternative derived from the template's scheme and host. Whenever an
// alternative is present the argument becomes optional.
func (r *Registry) Define(key string, spec HandlerSpec, opts Options) error {
	if key == "" {
		return errors.New("webjump key must not be empty")
	}
	if spec == nil {
		return errors.New("webjump " + key + " has no handler")
	}

	handler, template := spec.compile()
	if handler == nil {
		return errors.New("webjump " + key + " has no handler")
	}

	argument := opts.Argument
	alternative := opts.Alternative
	if alternative != "" && argument == ArgumentForbidden {
		return errors.New("webjump " + key + " has an alternative but forbids arguments")
	}

	switch s := spec.(type) {
	case HandlerFunc:
		if argument == ArgumentUnset && alternative == "" {
			argument = ArgumentRequired
		}
	case Template:
		switch {
		case s.HasPlaceholder():
			if alternative == "" && argument != ArgumentForbidden {
				alternative = trimURLPath(template)
			}
		case argument == ArgumentUnset && alternative == "":
			argument = ArgumentForbidden
		}
	}
	if alternative != "" && argument == ArgumentUnset {
		argument = ArgumentOptional
	}
	if argument == ArgumentUnset {
		// placeholder template whose alternative could not be derived
		argument = ArgumentRequired
	}
	if argument == ArgumentForbidden {
		fixed := handler
		handler = func(string) string { return fixed("") }
	}

	r.defs[key] = &Definition{
		Key:         key,
		Handler:     handler,
		Argument:    argument,
		Alternative: alternative,
		Completer:   opts.Completer,
		Description: opts.Description,
		Template:    template,
	}

	r.logger.Debug("defined webjump",
		zap.String("key", key),
		zap.Stringer("argument", argument),
		zap.String("alternative", alternative))
	return nil
}

// Clear removes every webjump.
func (r *Registry) Clear() {
	r.defs = make(map[string]*Definition)
}

// Get returns the webjump registered under exactly key.
func (r *Registry) Get(key string) (*Definition, bool) {
	def, ok := r.defs[key]
	return def, ok
}

func (r *Registry) Len() int {
	return len(r.defs)
}

// Keys returns all names in sorted order.
func (r *Registry) Keys() []string {
	keys := lo.Keys(r.defs)
	sort.Strings(keys)
	return keys
}

// Definitions returns all webjumps sorted by key.
func (r *Registry) Definitions() []*Definition {
	return lo.Map(r.Keys(), func(key string, _ int) *Definition {
		return r.defs[key]
	})
}

// Match splits input at its first space into a name and an argument and looks
// the name up, first exactly and then, if enabled, as a unique prefix. It
// returns nil without error when nothing or more than one webjump matches,
// and a *MissingArgumentError when the matched webjump requires an argument
// that was not given.
func (r *Registry) Match(input string) (*Match, error) {
	key, arg, hasArg := splitInput(input)

	match, ok := r.defs[key]
	if !ok && r.partialMatch {
		for k, def := range r.defs {
			if !strings.HasPrefix(k, key) {
				continue
			}
			if match != nil {
				r.logger.Debug("ambiguous webjump prefix", zap.String("prefix", key))
				return nil, nil
			}
			match = def
		}
	}
	if match == nil {
		return nil, nil
	}

	if !hasArg && match.Argument == ArgumentRequired {
		return nil, &MissingArgumentError{Key: match.Key}
	}

	return &Match{
		Definition:  match,
		Key:         key,
		Argument:    arg,
		HasArgument: hasArg,
	}, nil
}

// Resolve returns the URL for input and true, or false when input does not
// name a webjump.
func (r *Registry) Resolve(input string) (string, bool, error) {
	m, err := r.Match(input)
	if err != nil || m == nil {
		return "", false, err
	}
	return m.URL(), true, nil
}

// ResolveOrPassthrough resolves input as a webjump, falling back to input
// itself so that it can be treated as a literal URL or search string.
func (r *Registry) ResolveOrPassthrough(input string) (string, error) {
	url, ok, err := r.Resolve(input)
	if err != nil {
		return "", err
	}
	if !ok {
		return input, nil
	}
	return url, nil
}

func splitInput(input string) (key, arg string, hasArg bool) {
	sp := strings.IndexByte(input, ' ')
	if sp == -1 {
		return input, "", false
	}
	key, arg = input[:sp], input[sp+1:]
	if strings.TrimSpace(arg) == "" {
		return key, "", false
	}
	return key, arg, true
}

package config

import (
	"fmt"

	"github.com/robottwo/webjump/internal/completion"
	"github.com/robottwo/webjump/internal/webjump"
	"go.uber.org/zap"
)

// BuildRegistry creates a registry from cfg and the user's webjumps. When
// history is non-nil every webjump that takes an argument also completes from
// previously used arguments. Webjumps that fail to register are skipped and
// reported in the returned slice.
func BuildRegistry(cfg *Config, specs []WebjumpSpec, history completion.ArgumentHistory, logger *zap.Logger) (*webjump.Registry, []error) {
	var errs []error

	registry := webjump.NewRegistry(logger)
	registry.SetPartialMatch(cfg.PartialMatch)

	if cfg.DefaultWebjumps {
		if err := webjump.DefineDefaults(registry); err != nil {
			errs = append(errs, fmt.Errorf("default webjumps: %w", err))
		}
	}
	if cfg.DeliciousUser != "" {
		if err := webjump.DefineDeliciousWebjumps(registry, cfg.DeliciousUser); err != nil {
			errs = append(errs, fmt.Errorf("delicious webjumps: %w", err))
		}
	}
	if cfg.LastfmUser != "" {
		if err := webjump.DefineLastfmWebjumps(registry, cfg.LastfmUser); err != nil {
			errs = append(errs, fmt.Errorf("last.fm webjumps: %w", err))
		}
	}

	for _, spec := range specs {
		if err := defineSpec(registry, spec); err != nil {
			errs = append(errs, fmt.Errorf("webjump %s: %w", spec.Name, err))
		}
	}

	if history != nil {
		for _, def := range registry.Definitions() {
			if def.Argument == webjump.ArgumentForbidden {
				continue
			}
			hc := completion.NewHistoryCompleter(history, def.Key, 0)
			if def.Completer == nil {
				def.Completer = hc
			} else {
				def.Completer = completion.Chain{def.Completer, hc}
			}
		}
	}

	return registry, errs
}

func defineSpec(registry *webjump.Registry, spec WebjumpSpec) error {
	argument, err := webjump.ParseArgumentPolicy(spec.Argument)
	if err != nil {
		return err
	}

	opts := webjump.Options{
		Argument:    argument,
		Alternative: spec.Alternative,
		Description: spec.Description,
	}
	if len(spec.Completions) > 0 {
		opts.Completer = completion.NewStaticCompleter(spec.Completions...)
	}

	return registry.Define(spec.Name, webjump.Template(spec.URL), opts)
}

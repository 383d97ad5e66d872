// Package webjump implements a registry of named URL templates ("webjumps")
// that can be invoked by name plus optional argument text, resolved to URLs,
// and completed by name or argument from an interactive input line.
package webjump

import (
	"context"
	"fmt"
	"strings"

	"github.com/robottwo/webjump/pkg/shellinput"
)

// ArgumentPolicy controls whether a webjump accepts an argument.
type ArgumentPolicy int

const (
	// ArgumentUnset asks Define to derive the policy from the handler.
	ArgumentUnset ArgumentPolicy = iota
	// ArgumentRequired rejects invocations without an argument.
	ArgumentRequired
	// ArgumentForbidden ignores any argument and always yields the same URL.
	ArgumentForbidden
	// ArgumentOptional accepts invocations with or without an argument.
	ArgumentOptional
)

func (p ArgumentPolicy) String() string {
	switch p {
	case ArgumentRequired:
		return "required"
	case ArgumentForbidden:
		return "forbidden"
	case ArgumentOptional:
		return "optional"
	default:
		return "unset"
	}
}

// ParseArgumentPolicy parses the names produced by String. "none" is accepted
// as a synonym for "forbidden" and the empty string yields ArgumentUnset.
func ParseArgumentPolicy(s string) (ArgumentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ArgumentUnset, nil
	case "required":
		return ArgumentRequired, nil
	case "forbidden", "none":
		return ArgumentForbidden, nil
	case "optional":
		return ArgumentOptional, nil
	default:
		return ArgumentUnset, fmt.Errorf("unknown argument policy %q", s)
	}
}

// Handler maps an argument to a URL. arg is empty when none was supplied.
type Handler func(arg string) string

// HandlerSpec is either a Template or a HandlerFunc.
type HandlerSpec interface {
	compile() (Handler, string)
}

// Template is a URL that may contain a single %s placeholder for the
// percent-encoded argument.
type Template string

func (t Template) compile() (Handler, string) {
	return compileTemplate(string(t)), string(t)
}

// HasPlaceholder reports whether the template takes an argument.
func (t Template) HasPlaceholder() bool {
	return strings.Contains(string(t), placeholder)
}

// HandlerFunc computes the URL in code.
type HandlerFunc func(arg string) string

func (f HandlerFunc) compile() (Handler, string) {
	if f == nil {
		return nil, ""
	}
	return Handler(f), ""
}

// ArgumentCompleter produces completions for the argument part of a webjump
// invocation. pos is the cursor offset within arg.
type ArgumentCompleter interface {
	Complete(ctx context.Context, arg string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error)
}

// ArgumentCompleterFunc adapts a function to ArgumentCompleter.
type ArgumentCompleterFunc func(ctx context.Context, arg string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error)

func (f ArgumentCompleterFunc) Complete(ctx context.Context, arg string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error) {
	return f(ctx, arg, pos, conservative)
}

// Options are the optional attributes of a webjump.
type Options struct {
	Completer   ArgumentCompleter
	Description string
	Argument    ArgumentPolicy
	Alternative string
}

// Definition is one registered webjump.
type Definition struct {
	Key         string
	Handler     Handler
	Argument    ArgumentPolicy
	Alternative string
	Completer   ArgumentCompleter
	Description string

	// Template is the source template, empty for HandlerFunc webjumps.
	Template string
}

// CompletionString is the text name completion inserts for this webjump.
func (d *Definition) CompletionString() string {
	if d.Argument == ArgumentForbidden {
		return d.Key
	}
	return d.Key + " "
}

// Match is the result of matching an input line against the registry.
type Match struct {
	Definition *Definition

	// Key is the name as typed, which may be a unique prefix of Definition.Key.
	Key string

	// Argument is the text after the first space. HasArgument is false when
	// there was no space or only whitespace followed it.
	Argument    string
	HasArgument bool
}

// URL resolves the match. Without an argument the alternative URL wins.
func (m *Match) URL() string {
	if !m.HasArgument && m.Definition.Alternative != "" {
		return m.Definition.Alternative
	}
	return m.Definition.Handler(m.Argument)
}

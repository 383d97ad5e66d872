package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robottwo/webjump/internal/webjump"
	"github.com/robottwo/webjump/pkg/shellinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var _ shellinput.CompletionProvider = (*WebjumpCompletionProvider)(nil)

func newTestProvider(t *testing.T) *WebjumpCompletionProvider {
	t.Helper()
	r := webjump.NewRegistry(zaptest.NewLogger(t))
	require.NoError(t, r.Define("maps", webjump.Template("http://maps.google.com/?q=%s"), webjump.Options{
		Description: "Google Maps",
		Completer:   NewStaticCompleter("paris", "parma"),
	}))
	require.NoError(t, r.Define("map2", webjump.Template("http://map2.example.com/?q=%s"), webjump.Options{}))
	require.NoError(t, r.Define("lastfm", webjump.Template("http://www.last.fm/user/alice"), webjump.Options{}))
	require.NoError(t, r.Define("wiki", webjump.HandlerFunc(func(arg string) string {
		return "https://en.wikipedia.org/wiki/" + arg
	}), webjump.Options{Description: "Wikipedia"}))
	return NewWebjumpCompletionProvider(r, false, zaptest.NewLogger(t))
}

func TestGetCompletions(t *testing.T) {
	provider := newTestProvider(t)

	tests := []struct {
		name     string
		line     string
		pos      int
		expected []string
	}{
		{name: "names", line: "ma", pos: 2, expected: []string{"map2 ", "maps "}},
		{name: "forbidden name", line: "la", pos: 2, expected: []string{"lastfm"}},
		{name: "argument", line: "maps pa", pos: 7, expected: []string{"maps paris", "maps parma"}},
		{name: "missing argument", line: "wiki", pos: 4, expected: []string{"wiki "}},
		{name: "nothing", line: "zzz", pos: 3, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, candidateValues(provider.GetCompletions(tt.line, tt.pos)))
		})
	}
}

func TestGetCompletionsSwallowsErrors(t *testing.T) {
	provider := newTestProvider(t)
	require.NoError(t, provider.Registry.Define("slow", webjump.Template("http://slow.example.com/?q=%s"), webjump.Options{
		Completer: webjump.ArgumentCompleterFunc(func(ctx context.Context, _ string, _ int, _ bool) ([]shellinput.CompletionCandidate, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}),
	}))
	require.NoError(t, provider.Registry.Define("broken", webjump.Template("http://broken.example.com/?q=%s"), webjump.Options{
		Completer: webjump.ArgumentCompleterFunc(func(context.Context, string, int, bool) ([]shellinput.CompletionCandidate, error) {
			return nil, errors.New("boom")
		}),
	}))
	provider.Timeout = 10 * time.Millisecond

	got := provider.GetCompletions("slow x", 6)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = provider.GetCompletions("broken x", 8)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err := provider.Complete(context.Background(), "broken x", 8)
	assert.EqualError(t, err, "boom")
}

func TestGetHelpInfo(t *testing.T) {
	provider := newTestProvider(t)

	t.Run("webjump without argument", func(t *testing.T) {
		help := provider.GetHelpInfo("maps", 4)
		assert.Contains(t, help, "**maps** - Google Maps")
		assert.Contains(t, help, "Template: http://maps.google.com/?q=%s")
		assert.Contains(t, help, "Without argument: http://maps.google.com/")
		assert.Contains(t, help, "Argument: optional")
		assert.NotContains(t, help, "Opens")
	})

	t.Run("webjump with argument", func(t *testing.T) {
		help := provider.GetHelpInfo("maps new york", 13)
		assert.Contains(t, help, "Opens http://maps.google.com/?q=new%20york")
	})

	t.Run("missing argument", func(t *testing.T) {
		help := provider.GetHelpInfo("wiki", 4)
		assert.Contains(t, help, "**wiki** - Wikipedia")
		assert.Contains(t, help, "requires an argument")
		assert.NotContains(t, help, "Template:")
	})

	t.Run("ambiguous", func(t *testing.T) {
		assert.Equal(t, "**map** is ambiguous: map2, maps", provider.GetHelpInfo("map x", 5))
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Equal(t, "", provider.GetHelpInfo("zzz", 3))
		assert.Equal(t, "", provider.GetHelpInfo("", 0))
	})

	t.Run("forbidden", func(t *testing.T) {
		help := provider.GetHelpInfo("lastfm", 6)
		assert.Contains(t, help, "Argument: forbidden")
		assert.NotContains(t, help, "Without argument")
	})
}

package webjump

import (
	"context"
	"errors"
	"testing"

	"github.com/robottwo/webjump/pkg/shellinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completerCall struct {
	arg          string
	pos          int
	conservative bool
}

func recordingCompleter(calls *[]completerCall, values ...string) ArgumentCompleter {
	return ArgumentCompleterFunc(func(_ context.Context, arg string, pos int, conservative bool) ([]shellinput.CompletionCandidate, error) {
		*calls = append(*calls, completerCall{arg: arg, pos: pos, conservative: conservative})
		out := make([]shellinput.CompletionCandidate, 0, len(values))
		for _, v := range values {
			out = append(out, shellinput.CompletionCandidate{Value: v})
		}
		return out, nil
	})
}

func values(candidates []shellinput.CompletionCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Value
	}
	return out
}

func TestNameCompletions(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{Description: "Google Maps"}))
	require.NoError(t, r.Define("map2", Template("http://map2.example.com/?q=%s"), Options{}))
	require.NoError(t, r.Define("lastfm", Template("http://www.last.fm/user/alice"), Options{}))

	tests := []struct {
		name  string
		input string
		pos   int
		want  []string
	}{
		{name: "empty input lists everything", input: "", pos: 0, want: []string{"lastfm", "map2 ", "maps "}},
		{name: "prefix", input: "ma", pos: 2, want: []string{"map2 ", "maps "}},
		{name: "forbidden has no trailing space", input: "la", pos: 2, want: []string{"lastfm"}},
		{name: "cursor limits the prefix", input: "lastfm", pos: 1, want: []string{"lastfm"}},
		{name: "no match", input: "zz", pos: 2, want: []string{}},
		{name: "pos past end is clamped", input: "map", pos: 99, want: []string{"map2 ", "maps "}},
		{name: "negative pos is clamped", input: "map", pos: -1, want: []string{"lastfm", "map2 ", "maps "}},
		{name: "argument without completer", input: "maps par", pos: 8, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Completions(context.Background(), tt.input, tt.pos, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(got))
		})
	}

	got, err := r.Completions(context.Background(), "maps", 4, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Google Maps", got[0].Description)
}

func TestCompletionsDelegatesToArgumentCompleter(t *testing.T) {
	var calls []completerCall
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{
		Completer: recordingCompleter(&calls, "paris", "parma"),
	}))

	got, err := r.Completions(context.Background(), "maps pa", 7, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"maps paris", "maps parma"}, values(got))
	require.Len(t, calls, 1)
	assert.Equal(t, completerCall{arg: "pa", pos: 2, conservative: true}, calls[0])
}

func TestCompletionsDelegatesWithTypedPrefix(t *testing.T) {
	var calls []completerCall
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{
		Completer: recordingCompleter(&calls, "paris"),
	}))

	got, err := r.Completions(context.Background(), "ma pa", 5, false)
	require.NoError(t, err)
	// nested under the full name, not the typed prefix
	assert.Equal(t, []string{"maps paris"}, values(got))
	require.Len(t, calls, 1)
	assert.Equal(t, "pa", calls[0].arg)
	assert.Equal(t, 2, calls[0].pos)
}

func TestCompletionsCursorInsideArgument(t *testing.T) {
	var calls []completerCall
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{
		Completer: recordingCompleter(&calls),
	}))

	_, err := r.Completions(context.Background(), "maps paris france", 8, false)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "par", calls[0].arg)
	assert.Equal(t, 3, calls[0].pos)
}

func TestCompletionsNestsDisplay(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{
		Completer: ArgumentCompleterFunc(func(context.Context, string, int, bool) ([]shellinput.CompletionCandidate, error) {
			return []shellinput.CompletionCandidate{
				{Value: "paris", Display: "Paris, France", Description: "city"},
				{Value: "rome"},
			}, nil
		}),
	}))

	got, err := r.Completions(context.Background(), "maps p", 6, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "maps paris", got[0].Value)
	assert.Equal(t, "maps Paris, France", got[0].Display)
	assert.Equal(t, "city", got[0].Description)
	assert.Equal(t, "", got[1].Display)
}

func TestCompletionsSwallowsMissingArgument(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Define("wiki", HandlerFunc(func(arg string) string {
		return "https://en.wikipedia.org/wiki/" + arg
	}), Options{}))

	got, err := r.Completions(context.Background(), "wiki", 4, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"wiki "}, values(got))

	got, err = r.Completions(context.Background(), "wiki ", 5, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"wiki "}, values(got))
}

func TestCompletionsEmptyArgumentFallsBackToNames(t *testing.T) {
	var calls []completerCall
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{
		Completer: recordingCompleter(&calls, "paris"),
	}))

	got, err := r.Completions(context.Background(), "maps ", 5, false)
	require.NoError(t, err)
	assert.Empty(t, calls)
	assert.Equal(t, []string{"maps "}, values(got))
}

func TestCompletionsPropagatesCompleterError(t *testing.T) {
	boom := errors.New("boom")
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{
		Completer: ArgumentCompleterFunc(func(context.Context, string, int, bool) ([]shellinput.CompletionCandidate, error) {
			return nil, boom
		}),
	}))

	got, err := r.Completions(context.Background(), "maps pa", 7, false)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}

func TestCompletionsHonoursCancelledContext(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Define("maps", Template("http://maps.google.com/?q=%s"), Options{
		Completer: ArgumentCompleterFunc(func(ctx context.Context, _ string, _ int, _ bool) ([]shellinput.CompletionCandidate, error) {
			return nil, ctx.Err()
		}),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Completions(ctx, "maps pa", 7, false)
	assert.ErrorIs(t, err, context.Canceled)
}

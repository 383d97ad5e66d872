package shellinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidates(values ...string) []CompletionCandidate {
	out := make([]CompletionCandidate, len(values))
	for i, v := range values {
		out[i] = CompletionCandidate{Value: v}
	}
	return out
}

func TestCompletionCandidateLabel(t *testing.T) {
	assert.Equal(t, "maps ", CompletionCandidate{Value: "maps "}.Label())
	assert.Equal(t, "Paris", CompletionCandidate{Value: "maps paris", Display: "Paris"}.Label())
}

func TestCompletionStateCycling(t *testing.T) {
	cs := NewCompletionState()
	assert.False(t, cs.Active())
	assert.Equal(t, -1, cs.Selected())
	assert.Equal(t, "", cs.Next())
	assert.Equal(t, "", cs.Current())

	cs.Start("ma", candidates("map2 ", "maps "))
	assert.True(t, cs.Active())
	assert.True(t, cs.HasMultiple())
	assert.Equal(t, "", cs.Current(), "nothing is selected before the first Next")

	assert.Equal(t, "map2 ", cs.Next())
	assert.Equal(t, "maps ", cs.Next())
	assert.Equal(t, "map2 ", cs.Next())
	assert.Equal(t, 0, cs.Selected())
	assert.Equal(t, "maps ", cs.Prev())
	assert.Equal(t, "maps ", cs.Current())

	assert.Equal(t, "ma", cs.Cancel())
	assert.False(t, cs.Active())
	assert.Nil(t, cs.Suggestions())
}

func TestCompletionStatePrevFromStart(t *testing.T) {
	cs := NewCompletionState()
	cs.Start("m", candidates("a", "b", "c"))
	assert.Equal(t, "c", cs.Prev())
}

func TestCompletionStateStartEmpty(t *testing.T) {
	cs := NewCompletionState()
	cs.Start("zzz", nil)
	assert.False(t, cs.Active())
	assert.False(t, cs.HasMultiple())
	assert.Equal(t, "", cs.Next())
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "empty", values: nil, want: ""},
		{name: "single", values: []string{"maps "}, want: "maps "},
		{name: "shared", values: []string{"map2 ", "maps "}, want: "map"},
		{name: "none", values: []string{"maps", "lastfm"}, want: ""},
		{name: "prefix of another", values: []string{"lastfm", "lastfm-tag "}, want: "lastfm"},
		{name: "multibyte", values: []string{"café ", "cafè "}, want: "caf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonPrefix(candidates(tt.values...)))
		})
	}
}

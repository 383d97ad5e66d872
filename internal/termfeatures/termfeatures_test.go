package termfeatures

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func env(vars map[string]string) Getenv {
	return func(k string) string { return vars[k] }
}

func TestDetectNonTerminalWriter(t *testing.T) {
	caps := Detect(&bytes.Buffer{}, env(map[string]string{
		"TERM":    "xterm-256color",
		"TMUX":    "/tmp/tmux-1000/default,1,0",
		"SSH_TTY": "/dev/pts/3",
	}))

	assert.False(t, caps.IsTTY)
	assert.False(t, caps.IsDumb)
	assert.True(t, caps.IsTmux)
	assert.True(t, caps.IsSSH)
	assert.Equal(t, FeatureUnsupported, caps.WindowTitle)
	assert.Equal(t, termenv.Ascii, caps.ColorProfile())
}

func TestDetectDumbTerminal(t *testing.T) {
	caps := Detect(&bytes.Buffer{}, env(nil))
	assert.True(t, caps.IsDumb)
	assert.Equal(t, "", caps.Term)
}

func TestColorProfile(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		want termenv.Profile
	}{
		{"not a tty", Capabilities{Term: "xterm"}, termenv.Ascii},
		{"no color", Capabilities{Term: "xterm", IsTTY: true, NoColor: true}, termenv.Ascii},
		{"dumb", Capabilities{Term: "dumb", IsTTY: true, IsDumb: true}, termenv.Ascii},
		{"truecolor", Capabilities{Term: "xterm", IsTTY: true, ColorTerm: "truecolor"}, termenv.TrueColor},
		{"256", Capabilities{Term: "xterm-256color", IsTTY: true}, termenv.ANSI256},
		{"basic", Capabilities{Term: "vt100", IsTTY: true}, termenv.ANSI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.caps.ColorProfile())
		})
	}
}

func TestDetectWindowTitleSupport(t *testing.T) {
	assert.Equal(t, FeatureNative, detectWindowTitleSupport(Capabilities{Term: "xterm-256color", IsTTY: true}))
	assert.Equal(t, FeatureNative, detectWindowTitleSupport(Capabilities{Term: "vt220", TermProgram: "WezTerm", IsTTY: true}))
	assert.Equal(t, FeatureNative, detectWindowTitleSupport(Capabilities{Term: "vt220", IsTmux: true, IsTTY: true}))
	assert.Equal(t, FeatureUnknown, detectWindowTitleSupport(Capabilities{Term: "vt220", IsTTY: true}))
	assert.Equal(t, FeatureUnsupported, detectWindowTitleSupport(Capabilities{Term: "dumb", IsDumb: true, IsTTY: true}))
	assert.Equal(t, FeatureUnsupported, detectWindowTitleSupport(Capabilities{Term: "xterm"}))
}

func TestSetWindowTitle(t *testing.T) {
	var buf bytes.Buffer
	term := NewWithCapabilities(&buf, Capabilities{Term: "xterm", IsTTY: true, WindowTitle: FeatureNative})

	res := term.SetWindowTitle("webjump\x07 maps\tq")
	assert.True(t, res.Success)
	assert.Equal(t, "osc2", res.Method)
	assert.NoError(t, res.Error)
	assert.Equal(t, "\x1b]2;webjump maps q\x07", buf.String())

	buf.Reset()
	term.ResetWindowTitle()
	assert.Equal(t, "\x1b]2;\x07", buf.String())
}

func TestSetWindowTitleTmux(t *testing.T) {
	var buf bytes.Buffer
	term := NewWithCapabilities(&buf, Capabilities{Term: "screen", IsTTY: true, IsTmux: true, WindowTitle: FeatureNative})

	term.SetWindowTitle("webjump")
	assert.Equal(t, "\x1bPtmux;\x1b\x1b]2;webjump\x07\x1b\\", buf.String())
}

func TestSetWindowTitleUnsupported(t *testing.T) {
	var buf bytes.Buffer

	res := NewWithCapabilities(&buf, Capabilities{Term: "dumb", IsDumb: true}).SetWindowTitle("x")
	assert.ErrorIs(t, res.Error, ErrDumbTerminal)

	res = NewWithCapabilities(&buf, Capabilities{Term: "xterm"}).SetWindowTitle("x")
	assert.ErrorIs(t, res.Error, ErrNotATerminal)
	assert.False(t, res.Success)
	assert.Empty(t, buf.String())
}

func TestSanitizeTitleLimitsRunes(t *testing.T) {
	title := sanitizeTitle(strings.Repeat("é", 300))
	assert.Equal(t, 255, len([]rune(title)))
}

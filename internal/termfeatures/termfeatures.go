// Package termfeatures detects what the attached terminal can do and wraps the
// few escape sequences webjump emits.
package termfeatures

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// FeatureSupport indicates the level of support for a terminal feature.
type FeatureSupport int

const (
	FeatureUnsupported FeatureSupport = iota
	FeatureNative
	// FeatureUnknown indicates the feature may work but is not confirmed.
	FeatureUnknown
)

func (f FeatureSupport) String() string {
	switch f {
	case FeatureUnsupported:
		return "unsupported"
	case FeatureNative:
		return "native"
	case FeatureUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Capabilities describes an output stream and the terminal behind it.
type Capabilities struct {
	Term        string
	TermProgram string
	ColorTerm   string

	IsTTY    bool
	NoColor  bool
	IsSSH    bool
	IsTmux   bool
	IsScreen bool
	IsDumb   bool

	WindowTitle FeatureSupport
}

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(string) string

// Detect inspects w and the environment. w counts as a terminal only when it
// is an *os.File attached to a TTY.
func Detect(w io.Writer, getenv Getenv) Capabilities {
	if getenv == nil {
		getenv = os.Getenv
	}
	termName := getenv("TERM")
	caps := Capabilities{
		Term:        termName,
		TermProgram: getenv("TERM_PROGRAM"),
		ColorTerm:   getenv("COLORTERM"),
		IsTTY:       isTerminal(w),
		NoColor:     getenv("NO_COLOR") != "",
		IsSSH:       getenv("SSH_TTY") != "" || getenv("SSH_CONNECTION") != "",
		IsTmux:      getenv("TMUX") != "",
		IsScreen:    getenv("STY") != "",
		IsDumb:      termName == "dumb" || termName == "",
	}
	caps.WindowTitle = detectWindowTitleSupport(caps)
	return caps
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColorProfile picks the richest color profile the output can take.
func (c Capabilities) ColorProfile() termenv.Profile {
	if !c.IsTTY || c.NoColor || c.IsDumb {
		return termenv.Ascii
	}
	switch ct := strings.ToLower(c.ColorTerm); {
	case ct == "truecolor" || ct == "24bit":
		return termenv.TrueColor
	case strings.Contains(c.Term, "256color"):
		return termenv.ANSI256
	}
	return termenv.ANSI
}

var knownTitleSupport = map[string]bool{
	"iterm.app":        true,
	"apple_terminal":   true,
	"wezterm":          true,
	"kitty":            true,
	"alacritty":        true,
	"vscode":           true,
	"windows terminal": true,
	"gnome-terminal":   true,
	"konsole":          true,
	"tilix":            true,
	"foot":             true,
}

func detectWindowTitleSupport(caps Capabilities) FeatureSupport {
	if caps.IsDumb || !caps.IsTTY {
		return FeatureUnsupported
	}
	if knownTitleSupport[strings.ToLower(caps.TermProgram)] {
		return FeatureNative
	}

	t := strings.ToLower(caps.Term)
	for _, prefix := range []string{"xterm", "screen", "tmux", "rxvt", "linux"} {
		if strings.HasPrefix(t, prefix) {
			return FeatureNative
		}
	}
	if strings.Contains(t, "color") || caps.IsTmux || caps.IsScreen {
		return FeatureNative
	}
	return FeatureUnknown
}

// Terminal writes escape sequences to an output whose capabilities are known.
type Terminal struct {
	out  io.Writer
	caps Capabilities
}

// TitleResult reports what SetWindowTitle did.
type TitleResult struct {
	Success bool
	Method  string // "osc2" or "none"
	Error   error
}

// New detects the capabilities of out from the process environment.
func New(out io.Writer) *Terminal {
	return NewWithCapabilities(out, Detect(out, os.Getenv))
}

func NewWithCapabilities(out io.Writer, caps Capabilities) *Terminal {
	return &Terminal{out: out, caps: caps}
}

func (t *Terminal) Capabilities() Capabilities {
	return t.caps
}

func (t *Terminal) SupportsWindowTitle() bool {
	return t.caps.WindowTitle != FeatureUnsupported
}

// SetWindowTitle sets the window title. It is a no-op when unsupported.
func (t *Terminal) SetWindowTitle(title string) TitleResult {
	if t.caps.IsDumb {
		return TitleResult{Method: "none", Error: ErrDumbTerminal}
	}
	if !t.caps.IsTTY && t.caps.WindowTitle == FeatureUnsupported {
		return TitleResult{Method: "none", Error: ErrNotATerminal}
	}
	if t.caps.WindowTitle == FeatureUnsupported {
		return TitleResult{Method: "none"}
	}

	title = sanitizeTitle(title)
	seq := fmt.Sprintf("\x1b]2;%s\x07", title)
	if t.caps.IsTmux {
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]2;%s\x07\x1b\\", title)
	}

	_, err := io.WriteString(t.out, seq)
	return TitleResult{Success: err == nil, Method: "osc2", Error: err}
}

// ResetWindowTitle hands the title back to the terminal's default.
func (t *Terminal) ResetWindowTitle() TitleResult {
	return t.SetWindowTitle("")
}

// sanitizeTitle strips control characters and caps the title at 255 runes.
func sanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case r == '\t':
			b.WriteRune(' ')
		case r >= 32 && r != 127:
			b.WriteRune(r)
		}
	}
	runes := []rune(b.String())
	if len(runes) > 255 {
		runes = runes[:255]
	}
	return string(runes)
}

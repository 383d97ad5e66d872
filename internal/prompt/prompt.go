// Package prompt reads a webjump invocation interactively with live
// completion and help.
package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/robottwo/webjump/pkg/shellinput"
	"go.uber.org/zap"
)

// ErrInterrupted is returned when the user presses Ctrl+C or Esc.
var ErrInterrupted = errors.New("interrupted by user")

const maxVisibleSuggestions = 8

var (
	promptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	suggestionStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(0, 1)
)

type model struct {
	provider shellinput.CompletionProvider
	logger   *zap.Logger

	textInput   textinput.Model
	completion  *shellinput.CompletionState
	suggestions []shellinput.CompletionCandidate
	help        string

	width       int
	result      string
	interrupted bool
	done        bool
}

func initialModel(provider shellinput.CompletionProvider, prompt, initial string, logger *zap.Logger) model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.SetValue(initial)
	ti.CursorEnd()

	m := model{
		provider:   provider,
		logger:     logger,
		textInput:  ti,
		completion: shellinput.NewCompletionState(),
		width:      80,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textInput.Width = max(0, msg.Width-lipgloss.Width(m.textInput.Prompt)-1)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc:
			if m.completion.Active() {
				m.setValue(m.completion.Cancel())
				m.refresh()
				return m, nil
			}
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.result = m.textInput.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyTab:
			m.complete(false)
			return m, nil
		case tea.KeyShiftTab:
			m.complete(true)
			return m, nil
		}

		m.completion.Reset()
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// complete handles Tab and Shift+Tab. A single candidate is accepted at once
// and a longer common prefix is inserted before cycling starts.
func (m *model) complete(reverse bool) {
	if !m.completion.Active() {
		value := m.textInput.Value()
		candidates := m.provider.GetCompletions(value, m.cursor())
		switch {
		case len(candidates) == 0:
			return
		case len(candidates) == 1:
			m.setValue(candidates[0].Value)
			m.refresh()
			return
		}
		if prefix := shellinput.CommonPrefix(candidates); len(prefix) > len(value) && strings.HasPrefix(prefix, value) {
			m.setValue(prefix)
			m.refresh()
			return
		}
		m.completion.Start(value, candidates)
	}

	var next string
	if reverse {
		next = m.completion.Prev()
	} else {
		next = m.completion.Next()
	}
	m.setValue(next)
	m.help = m.provider.GetHelpInfo(next, len(next))
}

func (m *model) setValue(s string) {
	m.textInput.SetValue(s)
	m.textInput.CursorEnd()
}

// cursor converts the input's rune cursor to a byte offset.
func (m model) cursor() int {
	value := []rune(m.textInput.Value())
	pos := min(m.textInput.Position(), len(value))
	return len(string(value[:pos]))
}

func (m *model) refresh() {
	value := m.textInput.Value()
	pos := m.cursor()
	m.suggestions = m.provider.GetCompletions(value, pos)
	m.help = m.provider.GetHelpInfo(value, pos)
	m.logger.Debug("refreshed suggestions", zap.String("input", value), zap.Int("count", len(m.suggestions)))
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n")

	suggestions := m.suggestions
	selected := -1
	if m.completion.Active() {
		suggestions = m.completion.Suggestions()
		selected = m.completion.Selected()
	}

	start := 0
	if selected >= maxVisibleSuggestions {
		start = selected - maxVisibleSuggestions + 1
	}
	end := min(len(suggestions), start+maxVisibleSuggestions)
	for i := start; i < end; i++ {
		c := suggestions[i]
		line := c.Label()
		style := suggestionStyle
		if i == selected {
			style = selectedStyle
		}
		line = style.Render(line)
		if c.Description != "" {
			line += "  " + descriptionStyle.Render(c.Description)
		}
		sb.WriteString(line + "\n")
	}
	if hidden := len(suggestions) - end; hidden > 0 {
		sb.WriteString(descriptionStyle.Render("  ...") + "\n")
	}

	if m.help != "" {
		help := strings.ReplaceAll(m.help, "**", "")
		sb.WriteString(helpStyle.Render(wordwrap.String(help, max(20, m.width-4))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Run reads one line from the terminal. initial pre-fills the input.
func Run(provider shellinput.CompletionProvider, prompt, initial string, logger *zap.Logger) (string, error) {
	p := tea.NewProgram(initialModel(provider, prompt, initial, logger))
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m := final.(model)
	if m.interrupted {
		return "", ErrInterrupted
	}
	return m.result, nil
}

// Package tui is a terminal front end for the chat form.
package tui

import (
	"context"
	"strings"

	"github.com/Er-rdhtiwari/ai-app/internal/services/chatform"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

const defaultWidth = 80

// submitDoneMsg reports that a Submit started by the model has returned
type submitDoneMsg struct {
	err error
}

// Model renders one chatform.Form. The form is the source of truth; the
// model only tracks whether it has a submission outstanding.
type Model struct {
	ctx      context.Context
	form     *chatform.Form
	version  string
	input    textarea.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer
	width    int
	pending  bool
	quitting bool
}

func New(ctx context.Context, form *chatform.Form, version string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth)
	ta.SetHeight(4)
	// enter submits, so newlines move to alt+enter
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.SetValue(form.Snapshot().InputText)
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#0070F3"))

	return Model{
		ctx:      ctx,
		form:     form,
		version:  version,
		input:    ta,
		spin:     s,
		renderer: newRenderer(defaultWidth),
		width:    defaultWidth,
	}
}

func newRenderer(width int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("Markdown renderer unavailable, answers render as plain text")
		return nil
	}
	return renderer
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Loading is true from the submit key until the form settles
func (m Model) Loading() bool {
	return m.pending || m.form.Snapshot().Submitting
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-4, 20)
		m.input.SetWidth(m.width)
		m.renderer = newRenderer(m.width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter", "ctrl+s":
			if m.Loading() {
				return m, nil
			}
			m.pending = true
			m.input.Blur()
			return m, tea.Batch(m.submit(m.input.Value()), m.spin.Tick)
		}

		if m.Loading() {
			return m, nil
		}

	case submitDoneMsg:
		m.pending = false
		return m, m.input.Focus()

	case spinner.TickMsg:
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.form.SetInput(m.input.Value())
	}
	return m, cmd
}

func (m Model) submit(text string) tea.Cmd {
	form, ctx := m.form, m.ctx
	return func() tea.Msg {
		return submitDoneMsg{err: form.Submit(ctx, text)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.form.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("AI Chat Application"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Your Message:"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.Loading() {
		b.WriteString(disabledButtonStyle.Render(m.spin.View() + " Sending..."))
	} else {
		b.WriteString(buttonStyle.Render("Send Message"))
	}
	b.WriteString("\n\n")

	if snap.LastError != "" {
		b.WriteString(errorStyle.Width(m.width).Render(snap.LastError))
		b.WriteString("\n")
	}

	if resp := snap.LastResponse; resp != nil {
		body := labelStyle.Render("Response:") + "\n" +
			m.renderAnswer(resp.Answer) + "\n" +
			traceStyle.Render("Trace ID: "+resp.TraceID)
		b.WriteString(responseStyle.Width(m.width).Render(body))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter/ctrl+s send • alt+enter newline • esc quit • AI App v" + m.version))
	return b.String()
}

func (m Model) renderAnswer(answer string) string {
	if m.renderer == nil {
		return answer
	}
	out, err := m.renderer.Render(answer)
	if err != nil {
		return answer
	}
	return strings.Trim(out, "\n")
}

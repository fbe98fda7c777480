// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/touchtype/internal/model"
	"github.com/verte-zerg/touchtype/internal/session"
	"github.com/verte-zerg/touchtype/internal/timeout"
)

const (
	inputRows  = 6
	inputCols  = 40
	widthRatio = 0.70
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type keyMap struct {
	Submit key.Binding
	Change key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Change: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "change sentence")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Submit, k.Change, k.Quit}
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config  model.Config
	picker  session.Picker
	now     func() time.Time
	session session.Session

	input   textarea.Model
	watcher timeout.Model
	keys    keyMap
	help    help.Model

	width  int
	height int
}

// NewModel constructs a typing TUI model and starts the first session.
func NewModel(cfg model.Config, picker session.Picker) *Model {
	if cfg.PreviewLen <= 0 {
		cfg.PreviewLen = session.DefaultPreviewLen
	}
	input := textarea.New()
	input.Placeholder = "Start typing."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetWidth(inputCols)
	input.SetHeight(inputRows)
	input.Focus()

	m := &Model{
		config:  cfg,
		picker:  picker,
		now:     time.Now,
		input:   input,
		watcher: timeout.New(cfg.Timeout, cfg.CheckInterval),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.config.Timeout = m.watcher.Limit
	m.resetSession()
	return m
}

// Session returns the current session state.
func (m *Model) Session() session.Session {
	return m.session
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(maxInt(inputCols, m.contentWidth()))
		m.help.Width = m.width
		return m, nil
	case timeout.TickMsg:
		var cmd tea.Cmd
		m.watcher, cmd = m.watcher.Update(msg)
		return m, cmd
	case timeout.ExpiredMsg:
		if msg.ID == m.watcher.ID() {
			m.session = m.session.Expire(msg.At, m.config.Timeout)
			log.Printf("session timed out after %s", m.session.Elapsed(msg.At).Round(time.Second))
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.watcher = m.watcher.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Change):
			m.resetSession()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	blocks := []string{
		titleStyle.Render("Touch Typing"),
		"",
		renderSentence(m.session.Sentence, m.session.Typed, width),
		"",
		previewStyle.Render("Next Characters: " + m.session.NextCharacters(m.config.PreviewLen)),
		"",
		m.input.View(),
		"",
		m.renderStatus(),
		m.help.ShortHelpView(m.keys.bindings()),
	}
	content := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if countsAsKeyPress(msg) {
		m.session = m.session.KeyPressed()
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	after := m.input.Value()
	if after == before {
		return cmd
	}
	return tea.Batch(cmd, m.textChanged(after))
}

// countsAsKeyPress reports whether msg is a counted key press:
// characters, space and enter. A paste arrives as one event.
func countsAsKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyEnter:
		return true
	default:
		return false
	}
}

func (m *Model) textChanged(text string) tea.Cmd {
	wasIdle := m.session.State() == session.StateIdle
	m.session = m.session.TextChanged(text, m.now())
	if !wasIdle || m.session.State() != session.StateInProgress {
		return nil
	}
	log.Printf("session started: %q", m.session.Sentence)
	var cmd tea.Cmd
	m.watcher, cmd = m.watcher.Start(m.session.StartedAt)
	return cmd
}

func (m *Model) submit() {
	m.session = m.session.Submit(m.now())
	m.watcher = m.watcher.Stop()
	r := m.session.Result
	log.Printf("session submitted: words=%d/%d gross=%.2f net=%.2f accuracy=%.2f",
		r.TypedWordsCount, r.WordsCount, r.GrossWPM, r.NetWPM, r.Accuracy)
}

func (m *Model) resetSession() {
	m.watcher = m.watcher.Stop()
	m.session = session.Start(m.picker)
	m.input.Reset()
}

func (m *Model) renderStatus() string {
	segments := []string{
		fmt.Sprintf("Accuracy: %.2f%%", m.session.Accuracy),
		fmt.Sprintf("Key Presses: %d", m.session.KeyPresses),
	}
	switch m.session.State() {
	case session.StateInProgress:
		segments = append(segments, "In progress "+formatElapsed(m.session.Elapsed(m.now())))
	case session.StateEnded:
		segments = append(segments, "Ended "+formatElapsed(m.session.Elapsed(m.now())))
	default:
		segments = append(segments, "Waiting")
	}
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return maxInt(1, int(float64(m.width)*widthRatio))
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

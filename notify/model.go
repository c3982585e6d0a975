package notify

import (
	"strings"
	"time"

	"github.com/cinedex/cinedex/style"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoticeMsg carries a notice into the Bubble Tea update loop.
type NoticeMsg Notice

type clearMsg struct {
	seq int
}

// Model shows one notice at a time under the main view of a Bubble Tea program.
// It implements Notifier, so headless components can post to it from any goroutine.
type Model struct {
	notices chan Notice
	current *Notice
	seq     int
}

// NewModel returns a model that buffers a handful of pending notices.
func NewModel() *Model {
	return &Model{notices: make(chan Notice, 8)}
}

// ShowNotice queues a notice. When the queue is full the notice is dropped.
func (m *Model) ShowNotice(message string, options Options) {
	select {
	case m.notices <- Notice{Message: message, Options: options.Resolve()}:
	default:
	}
}

// Wait returns a command that delivers the next queued notice.
func (m *Model) Wait() tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg(<-m.notices)
	}
}

// Current returns the notice on screen, if any.
func (m *Model) Current() (Notice, bool) {
	if m.current == nil {
		return Notice{}, false
	}
	return *m.current, true
}

// Update shows incoming notices and clears them once their duration has passed.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoticeMsg:
		notice := Notice(msg)
		m.current = &notice
		m.seq++
		seq := m.seq
		return tea.Batch(
			tea.Tick(notice.Duration, func(_ time.Time) tea.Msg { return clearMsg{seq: seq} }),
			m.Wait(),
		)
	case clearMsg:
		// a newer notice owns the screen
		if msg.seq == m.seq {
			m.current = nil
		}
	}
	return nil
}

// View appends the current notice below the main content.
func (m *Model) View(main string) string {
	if m.current == nil {
		return main
	}

	var color lipgloss.Color
	switch m.current.Variant {
	case Error:
		color = style.ErrorColor
	case Success:
		color = style.SuccessColor
	default:
		color = style.FaintColor
	}

	line := style.New().Foreground(color).Render(glyph(m.current.Variant) + " " + m.current.Message)
	return strings.TrimRight(main, "\n") + "\n" + line
}

func glyph(v Variant) string {
	switch v {
	case Error:
		return style.GlyphFail
	case Success:
		return style.GlyphSuccess
	default:
		return style.GlyphInfo
	}
}

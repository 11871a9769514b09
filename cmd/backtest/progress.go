package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	progressMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	progressTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Bold(true)
	progressBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF87"))
	progressErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
)

// tickMsg reports one consumed replay event.
type tickMsg struct {
	at    time.Time
	ticks int
}

// doneMsg reports replay completion, successful or not.
type doneMsg struct {
	err error
}

// progressModel is a one-shot bubbletea view over a deterministic replay: it
// has no user-editable state, only what the replay loop reports through
// events channel.
type progressModel struct {
	start, end time.Time
	current    time.Time
	ticks      int

	events <-chan tea.Msg
	err    error
	done   bool
	width  int
}

func newProgressModel(start, end time.Time, events <-chan tea.Msg) progressModel {
	return progressModel{start: start, end: end, current: start, events: events}
}

func (m progressModel) Init() tea.Cmd {
	return listenForEvent(m.events)
}

func listenForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-events }
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.current = msg.at
		m.ticks = msg.ticks
		return m, listenForEvent(m.events)
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	width := m.width
	if width <= 0 || width > 60 {
		width = 40
	}

	pct := 0.0
	if total := m.end.Sub(m.start); total > 0 {
		pct = float64(m.current.Sub(m.start)) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	bar := progressBarStyle.Render(repeat("█", filled)) + progressMutedStyle.Render(repeat("░", width-filled))

	status := fmt.Sprintf("%s  %3.0f%%  ticks=%d  %s",
		bar, pct*100, m.ticks, m.current.Format("2006-01-02 15:04"))

	if m.done {
		if m.err != nil {
			return progressTitleStyle.Render("replay") + "\n" + status + "\n" + progressErrStyle.Render(m.err.Error()) + "\n"
		}
		return progressTitleStyle.Render("replay") + "\n" + status + "\n" + progressMutedStyle.Render("done") + "\n"
	}

	return progressTitleStyle.Render("replay") + "\n" + status + "\n"
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

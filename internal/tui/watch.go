// Package tui renders a terminal watch view for the telemetry bridge:
// connection state, replay clock, match status, and a rolling killfeed,
// all driven through the engine's sink interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pavtv/pavtv"
)

const killfeedDepth = 8

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	connectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	unresponsiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	disconnectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	headshotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Messages delivered from the sink into the bubbletea loop.
type (
	stateMsg    pavtv.ConnectionState
	timeMsg     float64
	statusMsg   pavtv.MatchStatus
	killfeedMsg []pavtv.KillfeedEntry
	pauseMsg    bool
	eventsMsg   int
)

// Model is the watch view state.
type Model struct {
	state    pavtv.ConnectionState
	clock    float64
	paused   bool
	status   *pavtv.MatchStatus
	feed     []pavtv.KillfeedEntry
	events   int
	spin     spinner.Model
	width    int
	quitting bool
}

// NewModel returns a watch view in the disconnected state.
func NewModel() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = dimStyle
	return Model{
		state: pavtv.StateDisconnected,
		spin:  sp,
		width: 80,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case stateMsg:
		m.state = pavtv.ConnectionState(msg)

	case timeMsg:
		m.clock = float64(msg)

	case statusMsg:
		s := pavtv.MatchStatus(msg)
		m.status = &s

	case killfeedMsg:
		m.feed = append(m.feed, msg...)
		if len(m.feed) > killfeedDepth {
			m.feed = m.feed[len(m.feed)-killfeedDepth:]
		}

	case pauseMsg:
		m.paused = bool(msg)

	case eventsMsg:
		m.events += int(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("pavtv watch"))
	sb.WriteString("  ")
	sb.WriteString(m.renderState())
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("clock "))
	sb.WriteString(valueStyle.Render(formatClock(m.clock)))
	if m.paused {
		sb.WriteString(unresponsiveStyle.Render("  ⏸ paused"))
	}
	sb.WriteString("\n")

	if m.status != nil {
		sb.WriteString(labelStyle.Render("match "))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%s · %s · %d:%d",
			m.status.MapName, m.status.GameMode, m.status.Team0Score, m.status.Team1Score)))
		if m.status.RoundState != "" {
			sb.WriteString(dimStyle.Render("  (" + m.status.RoundState + ")"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(labelStyle.Render("events "))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.events)))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("killfeed"))
	sb.WriteString("\n")
	if len(m.feed) == 0 {
		sb.WriteString(dimStyle.Render("  (empty)"))
		sb.WriteString("\n")
	}
	for _, entry := range m.feed {
		line := fmt.Sprintf("  %s ➔ %s [%s]", entry.Killer, entry.Killed, entry.KilledBy)
		if entry.Headshot {
			sb.WriteString(headshotStyle.Render(line + " ☠"))
		} else {
			sb.WriteString(valueStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("q: quit"))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderState() string {
	switch m.state {
	case pavtv.StateConnected:
		return connectedStyle.Render("● connected")
	case pavtv.StateUnresponsive:
		return unresponsiveStyle.Render("● unresponsive")
	default:
		return m.spin.View() + disconnectedStyle.Render(" disconnected")
	}
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d.%01d", total/60, total%60, int(seconds*10)%10)
}

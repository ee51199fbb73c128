package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rotsim/internal/experiment"
	"github.com/san-kum/rotsim/internal/sim"
)

const maxStepsPerTick = 512

type TickMsg time.Time

// LiveModel steps a network on every tick and shows the accumulating
// bucket weights together with the decision so far.
type LiveModel struct {
	net          *sim.Network
	title        string
	steps        int
	next         int
	stepsPerTick int
	stream       []int
	running      bool
	err          error
	frame        time.Duration
}

func NewLiveModel(net *sim.Network, title string, steps, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	if steps <= 0 || steps > net.Steps() {
		steps = net.Steps()
	}
	return LiveModel{
		net:          net,
		title:        title,
		steps:        steps,
		stepsPerTick: 1,
		stream:       make([]int, 0, steps),
		running:      true,
		frame:        time.Second / time.Duration(fps),
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

// Update handles input and advances the network.
func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.net.Reset()
		case "+", "=":
			if m.stepsPerTick < maxStepsPerTick {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) advance() {
	for i := 0; i < m.stepsPerTick && m.next < m.steps; i++ {
		if err := m.net.Step(m.next); err != nil {
			m.err = err
			m.running = false
			return
		}
		m.stream = append(m.stream, m.net.Classify())
		m.next++
	}
}

// Done reports whether every step has run or a step failed.
func (m LiveModel) Done() bool {
	return m.next >= m.steps || m.err != nil
}

// Stream returns the classifications produced so far.
func (m LiveModel) Stream() []int { return m.stream }

func (m LiveModel) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := statusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = statusPaused.Render("FAILED: " + m.err.Error())
	case m.Done():
		status = statusRunning.Render("DONE")
	case !m.running:
		status = statusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(row("step", fmt.Sprintf("%d / %d", m.next, m.steps)))
	s.WriteString(row("speed", fmt.Sprintf("%d steps/frame", m.stepsPerTick)))
	s.WriteString(row("bucket", fmt.Sprintf("%d", m.net.Classify())))

	d := experiment.Decide(m.stream, 3)
	if d.HasWinner {
		s.WriteString(labelStyle.Render("leader") + winnerStyle.Render(
			fmt.Sprintf("bucket %d (%d votes)", d.Winner.Value, d.Winner.Count)) + "\n")
	}
	s.WriteString("\n" + Bars(m.net.Snapshot(), m.net.Centers(), 40) + "\n")

	s.WriteString(helpStyle.Render("space pause • r reset weights • +/- speed • q quit"))
	return s.String()
}

// Package viz renders a live terminal view of a running network.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chill/internal/metrics"
	"github.com/san-kum/chill/internal/sim"
	"github.com/san-kum/chill/internal/thermal"
)

const (
	traceCapacity = 600
	stepsPerTick  = 10
	graphWidth    = 70
	graphHeight   = 12
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the simulation at frame rate and renders node
// temperatures with a scrolling trace for the selected node.
type Model struct {
	sim      *sim.Simulator
	nodes    []thermal.Node
	energy   *metrics.TotalEnergy
	name     string
	selected int
	running  bool
	traces   [][]float64
	err      error
}

func NewModel(name string, s *sim.Simulator) Model {
	net := s.Network()
	nodes := net.Nodes()
	traces := make([][]float64, len(nodes))
	for i, temp := range net.Temperatures() {
		traces[i] = append(make([]float64, 0, traceCapacity), temp)
	}
	return Model{
		sim:     s,
		nodes:   nodes,
		energy:  metrics.NewTotalEnergy(net),
		name:    name,
		running: true,
		traces:  traces,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "tab":
			if len(m.nodes) > 0 {
				m.selected = (m.selected + 1) % len(m.nodes)
			}
		case "up", "k":
			_ = m.sim.SetDt(m.sim.Dt() * 1.05)
		case "down", "j":
			_ = m.sim.SetDt(m.sim.Dt() * 0.95)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < stepsPerTick; i++ {
		if err := m.sim.Step(); err != nil {
			m.err = err
			m.running = false
			break
		}
	}
	temps := m.sim.Network().Temperatures()
	for i, temp := range temps {
		m.traces[i] = append(m.traces[i], temp)
		if len(m.traces[i]) > traceCapacity {
			m.traces[i] = m.traces[i][1:]
		}
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(failStyle.Render(fmt.Sprintf("DIVERGED: %v", m.err)) + "\n\n")
	case m.running:
		s.WriteString("RUNNING\n\n")
	default:
		s.WriteString("PAUSED\n\n")
	}

	if trace := m.traces[m.selected]; len(trace) > 1 {
		chart := asciigraph.Plot(trace,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(m.nodes[m.selected].Name+" [K]"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	temps := m.sim.Network().Temperatures()
	for i, n := range m.nodes {
		line := fmt.Sprintf("%-14s %9.2f K", n.Name, temps[i])
		if n.Fixed() {
			line += "  (fixed)"
		}
		if i == m.selected {
			s.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}
	s.WriteString("\n")

	m.energy.Observe(temps, m.sim.Elapsed())
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.sim.Elapsed())) + "\n")
	s.WriteString(labelStyle.Render("Dt") + valueStyle.Render(fmt.Sprintf("%.4fs", m.sim.Dt())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f J", m.energy.Value())) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause Tab:Node ↑↓:Dt Q:Quit"))
	return s.String()
}

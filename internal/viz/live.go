// Package viz provides the terminal live view of an atmosphere model
// stepping through the model year.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/y624745579/pism/internal/atmosphere"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/units"
)

const historyCapacity = 365

var (
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives one atmosphere model through the year and plots the air
// temperature at a probe cell.
type Model struct {
	atm       atmosphere.Model
	geom      *geometry.Geometry
	modelName string

	probeI, probeJ int

	t, dt    float64
	running  bool
	tempHist []float64
	err      error
}

// NewModel wraps an initialized atmosphere model. dt is the step per
// frame in model seconds.
func NewModel(atm atmosphere.Model, geom *geometry.Geometry, name string, probeI, probeJ int, dt float64) Model {
	return Model{
		atm:       atm,
		geom:      geom,
		modelName: name,
		probeI:    probeI,
		probeJ:    probeJ,
		dt:        dt,
		running:   true,
		tempHist:  make([]float64, 0, historyCapacity),
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
		case "r":
			m.t = 0
			m.tempHist = m.tempHist[:0]
			m.err = nil
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances model time by one frame and samples the probe cell.
func (m *Model) step() {
	if err := m.atm.Update(m.geom, m.t, m.dt); err != nil {
		m.err = err
		return
	}
	if err := m.atm.InitTimeseries([]float64{m.t}); err != nil {
		m.err = err
		return
	}
	m.atm.BeginPointwiseAccess()
	temp := m.atm.TempTimeSeries(m.probeI, m.probeJ)[0]
	m.atm.EndPointwiseAccess()

	m.tempHist = append(m.tempHist, temp)
	if len(m.tempHist) > historyCapacity {
		m.tempHist = m.tempHist[1:]
	}
	m.t += m.dt
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.err != nil {
		status = "ERROR: " + m.err.Error()
	}
	s.WriteString(status + "\n\n")

	day := yearDay(m.t)
	s.WriteString(labelStyle.Render("Model time") + valueStyle.Render(fmt.Sprintf("%.1f d", m.t/86400)) + "\n")
	s.WriteString(labelStyle.Render("Day of year") + valueStyle.Render(fmt.Sprintf("%.0f", day)) + "\n")
	s.WriteString(labelStyle.Render("Probe cell") + valueStyle.Render(fmt.Sprintf("(%d, %d)", m.probeI, m.probeJ)) + "\n")

	if len(m.tempHist) > 0 {
		cur := m.tempHist[len(m.tempHist)-1]
		s.WriteString(labelStyle.Render("Air temp") + valueStyle.Render(fmt.Sprintf("%.2f K", cur)) + "\n")
	}
	s.WriteString(labelStyle.Render("Mean temp") + valueStyle.Render(fmt.Sprintf("%.2f K", m.atm.MeanAnnualTemp().Mean())) + "\n")
	s.WriteString(labelStyle.Render("Mean precip") + valueStyle.Render(fmt.Sprintf("%.4g kg m-2 s-1", m.atm.MeanPrecipitation().Mean())) + "\n")

	s.WriteString(helpStyle.Render("\n────────────────────\nSP:Pause R:Reset Q:Quit"))
	statsView := statsStyle.Render(s.String())

	var graphView string
	if len(m.tempHist) > 1 {
		graph := asciigraph.Plot(m.tempHist,
			asciigraph.Height(16),
			asciigraph.Width(70),
			asciigraph.Caption("air_temp at probe (K)"),
		)
		graphView = graphStyle.Render(graph)
	} else {
		graphView = graphStyle.Render("collecting...")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, graphView, statsView)
}

func yearDay(t float64) float64 {
	d := math.Mod(t, units.SecondsPerModelYear)
	if d < 0 {
		d += units.SecondsPerModelYear
	}
	return d / 86400
}

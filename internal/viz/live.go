package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/sim"
)

const (
	liveCanvasWidth  = 72
	liveCanvasHeight = 18
	sparklineWidth   = 70
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tickMsg time.Time

// LiveModel is the bubbletea model animating a simulation as it runs:
// a scatter of the current cell positions above a sparkline of the
// mean pairwise distance.
type LiveModel struct {
	name  string
	terms []engine.Term
	cfg   sim.Config

	eng      *engine.Engine
	pos      engine.Positions
	step     int
	paused   bool
	done     bool
	interval time.Duration
	bounds   Bounds
	history  []float64
}

func NewLive(name string, pos0 engine.Positions, terms []engine.Term, cfg sim.Config) LiveModel {
	return LiveModel{
		name:     name,
		terms:    terms,
		cfg:      cfg,
		eng:      engine.New(cfg.Seed),
		pos:      pos0.Clone(),
		interval: 33 * time.Millisecond,
		bounds:   FitBounds([]engine.Positions{pos0}),
		history:  make([]float64, 0, cfg.Steps),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+":
			if m.interval > 8*time.Millisecond {
				m.interval /= 2
			}
		case "-":
			if m.interval < time.Second {
				m.interval *= 2
			}
		}
		return m, nil

	case tickMsg:
		if !m.paused && !m.done {
			m.advance()
		}
		if m.done {
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *LiveModel) advance() {
	newPos, _ := m.eng.Step(m.pos, m.terms, m.cfg.Dt)
	m.pos = newPos
	m.step++
	m.history = append(m.history, meanPairDistance(m.pos))
	m.growBounds()

	if m.step >= m.cfg.Steps || (m.cfg.ValidateState && !m.pos.IsValid()) {
		m.done = true
	}
}

// growBounds widens the viewport when cells drift outside it, but
// never shrinks it, so the animation stays steady.
func (m *LiveModel) growBounds() {
	frame := FitBounds([]engine.Positions{m.pos})
	if frame.MinY < m.bounds.MinY {
		m.bounds.MinY = frame.MinY
	}
	if frame.MaxY > m.bounds.MaxY {
		m.bounds.MaxY = frame.MaxY
	}
	if frame.MinX < m.bounds.MinX {
		m.bounds.MinX = frame.MinX
	}
	if frame.MaxX > m.bounds.MaxX {
		m.bounds.MaxX = frame.MaxX
	}
}

func (m LiveModel) View() string {
	canvas := NewCanvas(liveCanvasWidth, liveCanvasHeight)
	canvas.Plot(m.pos, m.bounds)

	title := titleStyle.Render(fmt.Sprintf(" cellsim · %s ", m.name))

	status := statusStyle.Render(fmt.Sprintf(
		"step %d/%d  t=%.2f  cells=%d", m.step, m.cfg.Steps,
		float64(m.step)*m.cfg.Dt, len(m.pos)))
	if m.paused {
		status += pausedStyle.Render("  [paused]")
	}
	if m.done {
		status += pausedStyle.Render("  [done]")
	}

	spark := ""
	if len(m.history) > 1 {
		data := m.history
		if len(data) > sparklineWidth {
			data = data[len(data)-sparklineWidth:]
		}
		spark = asciigraph.Plot(data,
			asciigraph.Height(5),
			asciigraph.Width(sparklineWidth),
			asciigraph.Caption("mean pair distance"),
		)
	}

	help := helpStyle.Render("space pause · +/- speed · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		borderStyle.Render(canvas.String()),
		spark,
		status,
		help,
	)
}

// RunLive animates a configured model in the terminal until it
// finishes or the user quits.
func RunLive(name string, pos0 engine.Positions, terms []engine.Term, cfg sim.Config) error {
	p := tea.NewProgram(NewLive(name, pos0, terms, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func meanPairDistance(pos engine.Positions) float64 {
	n := len(pos)
	if n < 2 {
		return 0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dy := pos[j][0] - pos[i][0]
			dx := pos[j][1] - pos[i][1]
			total += math.Sqrt(dx*dx + dy*dy)
			pairs++
		}
	}
	return total / float64(pairs)
}

// Package tui is the terminal host for the valley: it renders the grid and
// the dialogs and turns key presses into engine operations.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ForkArcade/river-valley-settlement/internal/economy"
	"github.com/ForkArcade/river-valley-settlement/internal/engine"
	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333"))

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFD700")).
			Padding(0, 1).
			Width(60)
)

// Model is the bubbletea model for one player.
type Model struct {
	sim     *engine.Simulation
	state   *engine.GameState
	palette []world.BuildingID
	pick    int
	cx, cy  int
	notice  string
	width   int
	height  int
}

// NewModel starts on the title screen.
func NewModel(sim *engine.Simulation) Model {
	palette := make([]world.BuildingID, len(sim.Content.Buildings))
	for i, b := range sim.Content.Buildings {
		palette[i] = b.ID
	}
	return Model{sim: sim, state: sim.StartScreen(), palette: palette}
}

// State exposes the current session.
func (m Model) State() *engine.GameState {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			return m, tea.Quit
		}
		switch m.state.Screen {
		case engine.ScreenStart, engine.ScreenVictory, engine.ScreenDefeat:
			if key == "enter" || key == "n" || key == "r" {
				m.begin()
			}
		case engine.ScreenPlaying:
			m.play(key)
		}
	}
	return m, nil
}

func (m *Model) begin() {
	m.state = m.sim.BeginGame()
	cfg := m.sim.Content.GenConfig(m.sim.Strategy)
	x0, y0, x1, y1 := cfg.StartArea()
	m.cx, m.cy = (x0+x1)/2, (y0+y1)/2
	m.notice = ""
}

func (m *Model) play(key string) {
	st := m.state
	if st.Choice != nil {
		if len(key) == 1 {
			if n := int(key[0]) - '1'; n >= 0 && n < len(st.Choice.Options) {
				m.sim.ResolveChoice(st, st.Choice.ID, n)
			}
		}
		return
	}

	switch key {
	case "up", "k":
		m.cy = max(m.cy-1, 0)
	case "down", "j":
		m.cy = min(m.cy+1, st.Grid.Height-1)
	case "left", "h":
		m.cx = max(m.cx-1, 0)
	case "right", "l":
		m.cx = min(m.cx+1, st.Grid.Width-1)
	case "tab":
		m.cycle(st, 1)
	case "shift+tab":
		m.cycle(st, -1)
	case "b":
		if len(m.palette) > 0 {
			m.sim.SetBuildMode(st, m.palette[m.pick])
		}
	case "enter":
		check := m.sim.Click(st, m.cx, m.cy)
		m.notice = ""
		if !check.Valid {
			m.notice = check.Detail
		}
	case "esc":
		m.sim.Cancel(st)
	case " ", "e":
		m.notice = ""
		m.sim.ProcessTurn(st)
	}
}

// cycle moves the palette pick by step and carries an active build mode
// along with it.
func (m *Model) cycle(st *engine.GameState, step int) {
	n := len(m.palette)
	if n == 0 {
		return
	}
	m.pick = (m.pick + step + n) % n
	if st.BuildMode != "" && st.BuildMode != m.palette[m.pick] {
		m.sim.SetBuildMode(st, m.palette[m.pick])
	}
}

func (m Model) View() string {
	switch m.state.Screen {
	case engine.ScreenStart:
		return "\n" + titleStyle.Render("RIVER VALLEY") + "\n\n" +
			"Found a settlement in an untamed valley.\n\n" +
			helpStyle.Render("enter: begin   q: quit") + "\n"
	case engine.ScreenVictory, engine.ScreenDefeat:
		return m.gameOverView()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.gridView(), m.hudView())
	parts := []string{main}
	if m.state.Choice != nil {
		parts = append(parts, m.choiceView())
	} else if msg := m.state.Message; msg != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(msg.Color)).Width(70).Render(msg.Text))
	}
	if m.notice != "" {
		parts = append(parts, errorStyle.Render(m.notice))
	}
	parts = append(parts, helpStyle.Render("arrows: move  enter: act  tab: pick  b: build  esc: cancel  space: end turn  q: quit"))
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) gridView() string {
	var b strings.Builder
	g := m.state.Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := m.cell(g.Get(x, y))
			if x == m.cx && y == m.cy {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) cell(t *world.Tile) string {
	if !t.Discovered {
		return hiddenStyle.Render("??")
	}
	if t.Building != nil {
		if def, ok := m.sim.Content.Building(t.Building.ID); ok {
			s := lipgloss.NewStyle().Foreground(lipgloss.Color(def.Color)).Bold(t.Building.Active)
			if !t.Building.Active {
				s = s.Faint(true)
			}
			return s.Render(def.Symbol + " ")
		}
	}
	def, _ := m.sim.Content.TerrainDef(t.Terrain)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(def.Color)).Render(def.Symbol + " ")
}

func (m Model) hudView() string {
	st := m.state
	res := st.Resources
	var b strings.Builder

	b.WriteString(titleStyle.Render("SETTLEMENT") + "\n")
	fmt.Fprintf(&b, "Turn %s\n", humanize.Comma(int64(st.Turn)))
	if node, ok := st.Story.Node(st.Story.Current()); ok {
		fmt.Fprintf(&b, "Chapter: %s\n", node.Label)
	}
	if id := m.sim.Identity(st); id != "" {
		fmt.Fprintf(&b, "Identity: %s\n", id)
	}
	b.WriteString("\n")

	prod := m.sim.CalculateProduction(st)
	for _, r := range economy.Stored {
		fmt.Fprintf(&b, "%-6s %3d/%-3d %+d\n", r, res.Get(r), res.Cap(r), prod[r])
	}
	fmt.Fprintf(&b, "people %3d/%-3d\n", res.Get(economy.Population), res.Get(economy.MaxPopulation))
	fmt.Fprintf(&b, "joy    %3d %+d\n", res.Get(economy.Happiness), prod[economy.Happiness])
	fmt.Fprintf(&b, "defense %d\n\n", m.sim.CalculateDefense(st))

	b.WriteString(titleStyle.Render("BUILD") + "\n")
	for i, id := range m.palette {
		def, _ := m.sim.Content.Building(id)
		marker := "  "
		if i == m.pick {
			marker = "> "
		}
		if st.BuildMode == id {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%s %s (%s)\n", marker, def.Symbol, def.Name, def.Cost.String())
	}

	if t := st.GetTile(m.cx, m.cy); t != nil && t.Discovered {
		b.WriteString("\n" + titleStyle.Render("TILE") + "\n")
		fmt.Fprintf(&b, "%s (%d,%d)\n", world.TerrainName(t.Terrain), t.X, t.Y)
		if t.Building != nil {
			def, _ := m.sim.Content.Building(t.Building.ID)
			status := "idle"
			if t.Building.Active {
				status = "working"
			}
			fmt.Fprintf(&b, "%s, %s, built %s turn\n", def.Name, status, humanize.Ordinal(t.Building.BuiltTurn))
		}
	}
	return hudStyle.Render(b.String())
}

func (m Model) choiceView() string {
	p := m.state.Choice
	var b strings.Builder
	b.WriteString(p.Prompt + "\n\n")
	for i, opt := range p.Options {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, opt.Label, helpStyle.Render(opt.Text))
	}
	return dialogStyle.Render(b.String())
}

func (m Model) gameOverView() string {
	st := m.state
	title := "THE SETTLEMENT HAS FALLEN"
	if st.Screen == engine.ScreenVictory {
		title = "VICTORY"
	}
	var b strings.Builder
	b.WriteString("\n" + titleStyle.Render(title) + "\n\n")
	if st.Screen == engine.ScreenVictory && st.Message != nil {
		b.WriteString(st.Message.Text + "\n\n")
	}
	fmt.Fprintf(&b, "Score: %s\n", humanize.Comma(int64(st.Score)))
	fmt.Fprintf(&b, "Turns: %d  Buildings: %d  Population: %d\n",
		st.Turn, st.BuildingCount, st.Resources.Get(economy.Population))
	if id := m.sim.Identity(st); id != "" {
		fmt.Fprintf(&b, "Identity: %s\n", id)
	}
	b.WriteString("\n" + helpStyle.Render("r: play again   q: quit") + "\n")
	return b.String()
}

// Run starts the interactive program.
func Run(sim *engine.Simulation) error {
	p := tea.NewProgram(NewModel(sim), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

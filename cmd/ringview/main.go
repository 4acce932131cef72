package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-paperchain/pkg/analysis"
	"github.com/dd0wney/cluso-paperchain/pkg/logging"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/molio"
	"github.com/dd0wney/cluso-paperchain/pkg/pucker"
	"github.com/dd0wney/cluso-paperchain/pkg/rings"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	summaryView view = iota
	ringsView
	linkagesView
	puckerView
	viewCount
)

var viewNames = []string{"Summary", "Rings", "Linkages", "Pucker"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Method   key.Binding
	Rerun    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Method: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "switch pucker method"),
	),
	Rerun: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-analyze"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Method, k.Rerun, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Up, k.Down},
		{k.Method, k.Rerun, k.Quit},
	}
}

type progressMsg rings.Progress

type resultMsg struct {
	res     *analysis.Result
	err     error
	elapsed time.Duration
}

type model struct {
	mol         *molecule.Molecule
	analyzer    *analysis.Analyzer
	params      analysis.Params
	result      *analysis.Result
	running     bool
	stage       string
	bar         progress.Model
	pct         float64
	currentView view
	ringTable   table.Model
	linkTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(mol *molecule.Molecule, a *analysis.Analyzer, params analysis.Params) model {
	return model{
		mol:      mol,
		analyzer: a,
		params:   params,
		running:  true,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		ringTable: newTable([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Size", Width: 5},
			{Title: "Atoms", Width: 36},
			{Title: "Orientation", Width: 12},
			{Title: "Pucker", Width: 16},
		}),
		linkTable: newTable([]table.Column{
			{Title: "#", Width: 4},
			{Title: "From", Width: 6},
			{Title: "To", Width: 6},
			{Title: "Path", Width: 36},
			{Title: "Shared", Width: 7},
		}),
		help: help.New(),
		keys: keys,
	}
}

func (m model) analyze() tea.Cmd {
	a, params := m.analyzer, m.params
	return func() tea.Msg {
		start := time.Now()
		res, err := a.Analyze(context.Background(), params)
		return resultMsg{res: res, err: err, elapsed: time.Since(start)}
	}
}

func (m model) Init() tea.Cmd {
	return m.analyze()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case progressMsg:
		m.stage = msg.Stage
		if msg.Total > 0 {
			m.pct = float64(msg.Done) / float64(msg.Total)
		}
		return m, nil

	case resultMsg:
		m.running = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Analysis failed: %v", msg.err)
			m.messageErr = true
		}
		if msg.res != nil {
			m.result = msg.res
			m.refreshTables()
			if msg.err == nil {
				m.message = fmt.Sprintf("Found %d rings and %d linkages in %s", len(msg.res.Rings), msg.res.Linkages.Len(), msg.elapsed.Round(time.Microsecond))
				m.messageErr = false
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount

		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount

		case key.Matches(msg, m.keys.Method):
			if m.running {
				return m, nil
			}
			if m.params.Method == pucker.HillReilly {
				m.params.Method = pucker.CremerPople
			} else {
				m.params.Method = pucker.HillReilly
			}
			m.running = true
			return m, m.analyze()

		case key.Matches(msg, m.keys.Rerun):
			if m.running {
				return m, nil
			}
			m.analyzer.Invalidate()
			m.running = true
			m.pct = 0
			return m, m.analyze()
		}
	}

	switch m.currentView {
	case ringsView, puckerView:
		m.ringTable, cmd = m.ringTable.Update(msg)
	case linkagesView:
		m.linkTable, cmd = m.linkTable.Update(msg)
	}
	return m, cmd
}

func (m model) atomLabel(i int) string {
	a := m.mol.Atom(i)
	if a.Name != "" {
		return a.Name
	}
	return a.Element + strconv.Itoa(i)
}

func (m model) pathLabel(atoms []int) string {
	names := make([]string, len(atoms))
	for i, a := range atoms {
		names[i] = m.atomLabel(a)
	}
	return strings.Join(names, "-")
}

func (m *model) refreshTables() {
	res := m.result
	ringRows := make([]table.Row, 0, len(res.Rings))
	for i, r := range res.Rings {
		family := "-"
		if i < len(res.Puckers) {
			c := res.Puckers[i].Selected(res.Params.Method)
			family = c.Family.String()
			if !c.Confident {
				family += "?"
			}
		}
		ringRows = append(ringRows, table.Row{
			strconv.Itoa(i),
			strconv.Itoa(r.Len()),
			m.pathLabel(r.Atoms),
			r.Orientation.String(),
			family,
		})
	}
	m.ringTable.SetRows(ringRows)

	paths := res.Linkages.Paths()
	linkRows := make([]table.Row, 0, len(paths))
	for i := range paths {
		p := &paths[i]
		shared := ""
		if res.Linkages.SharesEdges(p) {
			shared = "yes"
		}
		linkRows = append(linkRows, table.Row{
			strconv.Itoa(i),
			strconv.Itoa(p.StartRing),
			strconv.Itoa(p.EndRing),
			m.pathLabel(p.Atoms),
			shared,
		})
	}
	m.linkTable.SetRows(linkRows)
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Paperchain Ring Viewer: " + m.mol.Name))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch {
	case m.running:
		s.WriteString(contentStyle.Render(fmt.Sprintf("Analyzing (%s)\n\n%s", m.stage, m.bar.ViewAs(m.pct))))
	case m.result == nil:
		s.WriteString(contentStyle.Render("No result"))
	default:
		switch m.currentView {
		case summaryView:
			s.WriteString(m.renderSummary())
		case ringsView:
			s.WriteString(m.renderRings())
		case linkagesView:
			s.WriteString(m.renderLinkages())
		case puckerView:
			s.WriteString(m.renderPucker())
		}
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	var renderedTabs []string
	for i, tab := range viewNames {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderSummary() string {
	res := m.result
	stats := res.Stats()

	statsContent := fmt.Sprintf(`Structure
Atoms:       %d
Bonds:       %d
Back edges:  %d

Rings
Found:       %d
Orientated:  %d
Smallest:    %d
Largest:     %d
Linkages:    %d`,
		m.mol.AtomCount(),
		m.mol.TotalBonds(),
		res.BackEdges,
		stats.Rings,
		stats.Orientated,
		stats.SmallestRing,
		stats.LargestRing,
		stats.Linkages,
	)

	var fam strings.Builder
	fmt.Fprintf(&fam, "Puckers (%s)\n", res.Params.Method)
	for _, name := range slices.Sorted(maps.Keys(stats.ByFamily)) {
		fmt.Fprintf(&fam, "%-14s %d\n", name, stats.ByFamily[name])
	}
	fmt.Fprintf(&fam, "\nLow confidence: %d", stats.LowConfidence)
	if res.Truncated {
		fmt.Fprintf(&fam, "\n\n%s", errorStyle.Render(fmt.Sprintf("Stopped at %d rings", res.RingCap)))
	}

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(statsContent),
		statsBoxStyle.Render(fam.String()),
	))
}

func (m model) renderRings() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Small Rings"))
	s.WriteString("\n\n")
	s.WriteString(m.ringTable.View())
	s.WriteString("\n")
	s.WriteString(m.colorStrip())
	return contentStyle.Render(s.String())
}

func (m model) colorStrip() string {
	var s strings.Builder
	for _, c := range m.result.Colors() {
		s.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  "))
		s.WriteString(" ")
	}
	return s.String()
}

func (m model) renderLinkages() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Ring Linkages"))
	s.WriteString("\n\n")
	if m.result.Linkages.Len() == 0 {
		s.WriteString(helpStyle.Render("No linkages within the path limit"))
	} else {
		s.WriteString(m.linkTable.View())
	}
	return contentStyle.Render(s.String())
}

func (m model) renderPucker() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Ring Pucker"))
	s.WriteString("\n\n")

	i := m.ringTable.Cursor()
	if i < 0 || i >= len(m.result.Puckers) {
		s.WriteString(helpStyle.Render("Select a ring in the Rings view"))
		return contentStyle.Render(s.String())
	}
	rp := m.result.Puckers[i]
	hr, cp := rp.HillReilly, rp.CremerPople

	angles := make([]string, len(hr.Angles))
	for k, a := range hr.Angles {
		angles[k] = fmt.Sprintf("%.1f", a)
	}

	hrContent := fmt.Sprintf("Hill-Reilly\nFamily:     %s\nConfident:  %v\nAngles:     %s\nColor:      %s",
		hr.Family, hr.Confident, strings.Join(angles, " "), swatch(hr.Color))
	cpContent := fmt.Sprintf("Cremer-Pople\nFamily:     %s\nConfident:  %v\nAmplitude:  %.3f Å\nTheta:      %.1f°\nPhi:        %.1f°\nColor:      %s",
		cp.Family, cp.Confident, cp.Amplitude, cp.Theta*180/math.Pi, cp.Phi*180/math.Pi, swatch(cp.Color))

	s.WriteString(fmt.Sprintf("Ring %d: %s\n\n", i, m.pathLabel(m.result.Rings[i].Atoms)))
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(hrContent),
		statsBoxStyle.Render(cpContent),
	))
	return contentStyle.Render(s.String())
}

func swatch(c pucker.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ") + " " + c.Hex()
}

func main() {
	format := flag.String("format", "", "Input format: pdb, sdf or yaml (default: from extension)")
	maxRing := flag.Int("max-ring", 10, "Largest ring size to search for")
	maxPath := flag.Int("max-path", 5, "Longest linkage path between rings")
	method := flag.String("method", "hill-reilly", "Pucker coloring: hill-reilly or cremer-pople")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: ringview [flags] structure-file")
		os.Exit(2)
	}

	var inFormat molio.Format
	if *format != "" {
		var err error
		if inFormat, err = molio.ParseFormat(*format); err != nil {
			log.Fatalf("Invalid format: %v", err)
		}
	}
	mol, err := molio.LoadFile(flag.Arg(0), inFormat, molio.DefaultOptions())
	if err != nil {
		log.Fatalf("Failed to load structure: %v", err)
	}

	m, ok := pucker.ParseMethod(*method)
	if !ok {
		log.Fatalf("Unknown pucker method %q", *method)
	}
	params := analysis.Params{MaxPathLength: *maxPath, MaxRingSize: *maxRing, Method: m}
	if err := params.Validate(); err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	// The screen belongs to the TUI; only errors reach stderr.
	logger := logging.NewTextLogger(os.Stderr, logging.ErrorLevel)

	var p *tea.Program
	a, err := analysis.New(mol,
		analysis.WithLogger(logger),
		analysis.WithProgress(func(pr rings.Progress) {
			if p != nil {
				p.Send(progressMsg(pr))
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to prepare analysis: %v", err)
	}

	p = tea.NewProgram(initialModel(mol, a, params), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

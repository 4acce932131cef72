package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-paperchain/pkg/analysis"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)
)

// atomLabel names an atom by its atom name, falling back to element and
// index.
func atomLabel(v molecule.AtomView, i int) string {
	a := v.Atom(i)
	if a.Name != "" {
		return a.Name
	}
	return a.Element + strconv.Itoa(i)
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ") + " " + hex
}

func renderResult(res *analysis.Result, v molecule.AtomView) string {
	var s strings.Builder
	stats := res.Stats()

	s.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d rings, %d linkages", res.Molecule, stats.Rings, stats.Linkages)))
	s.WriteString("\n")
	s.WriteString(dimStyle.Render(fmt.Sprintf("max ring %d, max path %d, %s coloring, %d of %d rings orientated",
		res.Params.MaxRingSize, res.Params.MaxPathLength, res.Params.Method, stats.Orientated, stats.Rings)))
	s.WriteString("\n")

	if res.Truncated {
		s.WriteString(warnStyle.Render(fmt.Sprintf("ring search stopped at the safety cap of %d rings", res.RingCap)))
		s.WriteString("\n")
	}
	if res.Cancelled {
		s.WriteString(warnStyle.Render("analysis cancelled, results are partial"))
		s.WriteString("\n")
	}

	if len(res.Rings) > 0 {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))).
			Headers("#", "Size", "Atoms", "Orientation", "Pucker", "Color").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		colors := res.Colors()
		for i, r := range res.Rings {
			names := make([]string, r.Len())
			for k, a := range r.Atoms {
				names[k] = atomLabel(v, a)
			}
			family, color := "-", "-"
			if i < len(colors) {
				c := res.Puckers[i].Selected(res.Params.Method)
				family = c.Family.String()
				if !c.Confident {
					family += "?"
				}
				color = swatch(colors[i].Hex())
			}
			t.Row(strconv.Itoa(i), strconv.Itoa(r.Len()), strings.Join(names, "-"), r.Orientation.String(), family, color)
		}
		s.WriteString(t.Render())
		s.WriteString("\n")
	}

	if res.Linkages != nil && res.Linkages.Len() > 0 {
		s.WriteString(headerStyle.Render("Linkages"))
		s.WriteString("\n")
		for i, p := range res.Linkages.Paths() {
			names := make([]string, p.Len())
			for k, a := range p.Atoms {
				names[k] = atomLabel(v, a)
			}
			line := fmt.Sprintf("  %d. ring %d -> ring %d: %s", i, p.StartRing, p.EndRing, strings.Join(names, "-"))
			if res.Linkages.SharesEdges(&p) {
				line += dimStyle.Render(" (shared)")
			}
			s.WriteString(line)
			s.WriteString("\n")
		}
	}
	return s.String()
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"git.fractalqb.de/fractalqb/rndrmk/mkdeps"
)

var (
	purple = lipgloss.Color("99")
	green  = lipgloss.Color("76")
	red    = lipgloss.Color("204")
	dim    = lipgloss.Color("243")
	faint  = lipgloss.Color("238")
)

var (
	accentStyle  = lipgloss.NewStyle().Foreground(purple)
	successStyle = lipgloss.NewStyle().Foreground(green)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	labelStyle   = lipgloss.NewStyle().Foreground(dim)
)

func accent(s string) string { return accentStyle.Render(s) }

func successMsg(format string, a ...any) string {
	return successStyle.Render("✓") + " " + fmt.Sprintf(format, a...)
}

func errorMsg(format string, a ...any) string {
	return errorStyle.Render("✗") + " " + fmt.Sprintf(format, a...)
}

// configureColor disables styling unless stdout is a terminal that wants it.
func configureColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

type pair struct{ key, value string }

func keyValues(indent string, pairs ...pair) string {
	maxLen := 0
	for _, p := range pairs {
		maxLen = max(maxLen, len(p.key))
	}
	var sb strings.Builder
	for _, p := range pairs {
		label := fmt.Sprintf("%-*s", maxLen+1, p.key+":")
		sb.WriteString(indent + labelStyle.Render(label) + " " + p.value + "\n")
	}
	return sb.String()
}

func declarationText(d *mkdeps.Declaration) string {
	var sb strings.Builder
	sb.WriteString(keyValues("",
		pair{"Platform", accent(string(d.Platform))},
		pair{"Artifact", fmt.Sprintf("%s:%s:%s",
			d.Publication.GroupID,
			d.Publication.ArtifactID,
			d.Publication.Version,
		)},
		pair{"Main class", d.MainClass},
		pair{"OPENRNDR", d.Versions.Openrndr},
		pair{"ORX", d.Versions.Orx},
		pair{"ORML", d.Versions.Orml},
		pair{"Kotlin", d.Versions.Kotlin},
		pair{"Repositories", strings.Join(d.Repositories, ", ")},
	))
	rows := make([][]string, 0, len(d.Dependencies))
	for _, dep := range d.Dependencies {
		rows = append(rows, []string{
			dep.Scope.String(),
			dep.Group + ":" + dep.ArtifactID(),
			dep.Version,
		})
	}
	sb.WriteString(depTable([]string{"Scope", "Artifact", "Version"}, rows))
	sb.WriteByte('\n')
	return sb.String()
}

func depTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	oddStyle := cellStyle.Foreground(dim)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return cellStyle
			default:
				return oddStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

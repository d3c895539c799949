package wizard

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/sienna/internal/bundle"
	"github.com/theirongolddev/sienna/internal/cli"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#3AA99F")
	colorMuted  = lipgloss.Color("#878580")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")

	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	errStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  SIENNA · Expediente de proyecto"))
	b.WriteString("\n\n  ")
	b.WriteString(m.renderPhases())
	b.WriteString("\n\n")

	switch m.phase {
	case PhaseStructure:
		b.WriteString(cli.RenderTree(cli.FolderTree(bundle.Project{Name: m.values.Name}.RootName(), m.tree)))
		b.WriteString("\n")
	case PhaseExecution:
		if m.result != nil {
			b.WriteString(cli.RenderBudget(*m.result, false))
		} else {
			b.WriteString(mutedStyle.Render("  Sin presupuesto paramétrico."))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	case PhaseDone:
		if m.err != nil {
			b.WriteString(errStyle.Render("  ERROR: bundle generation failed"))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("  " + m.err.Error()))
		} else {
			b.WriteString(okStyle.Render(fmt.Sprintf("  Expediente listo: %s", m.outPath)))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d carpetas, %d archivos, id %s", m.manifest.Dirs, len(m.manifest.Files), m.manifest.ID)))
		}
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("  Presiona cualquier tecla para salir"))
		b.WriteString("\n")
		return b.String()
	}

	if m.busy {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(" Generando expediente...\n")
	} else if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n")
	}

	if len(m.log) > 0 {
		b.WriteString("\n")
		for _, line := range m.log {
			b.WriteString(mutedStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}
	b.WriteString(mutedStyle.Render("  " + keys.Quit.Help().Key + " " + keys.Quit.Help().Desc))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderPhases() string {
	labels := make([]string, 0, 4)
	for p := PhaseInit; p <= PhaseExecution; p++ {
		if p == m.phase {
			labels = append(labels, activeStyle.Render(p.Label()))
		} else {
			labels = append(labels, mutedStyle.Render(p.Label()))
		}
	}
	return strings.Join(labels, mutedStyle.Render("  ›  "))
}

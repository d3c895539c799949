package wizard

import (
	"errors"
	"strings"

	"github.com/theirongolddev/sienna/internal/estimate"

	"github.com/charmbracelet/huh"
)

func (m Model) formFor(p Phase) *huh.Form {
	v := m.values
	var form *huh.Form

	switch p {
	case PhaseInit:
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Nombre del proyecto").
				Placeholder("Casa Lomas Norte").
				Value(&v.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("el nombre es obligatorio")
					}
					return nil
				}),
			huh.NewText().
				Title("Contexto del proyecto").
				Description("Tipo de obra, cliente, alcance. Ej. obra pública, remodelación de interiores.").
				Value(&v.Context),
		))

	case PhaseStructure:
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Archivos plantilla (opcional)").
				Description("Rutas separadas por coma: .dwg, .skp, .rvt, .xlsx").
				Value(&v.Attachments),
		))

	case PhaseCost:
		tierOpts := make([]huh.Option[string], 0, len(estimate.Tiers))
		for _, t := range estimate.Tiers {
			tierOpts = append(tierOpts, huh.NewOption(t.Label(), string(t)))
		}
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("¿Incluir presupuesto paramétrico?").
					Value(&v.WithBudget),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Superficie construida (m²)").
					Value(&v.Area).
					Validate(func(s string) error {
						_, err := estimate.ParseArea(s)
						return err
					}),
				huh.NewSelect[string]().
					Title("Nivel de acabados").
					Options(tierOpts...).
					Value(&v.Tier),
				huh.NewText().
					Title("Preferencias de materiales").
					Description("Ej. piso de mármol, muros de block, losa maciza").
					Value(&v.Preferences),
			).WithHideFunc(func() bool { return !v.WithBudget }),
		)

	case PhaseExecution:
		v.Confirm = true
		form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("¿Generar expediente?").
				Affirmative("Generar").
				Negative("Cancelar").
				Value(&v.Confirm),
		))

	default:
		return nil
	}

	return form.WithShowHelp(true)
}

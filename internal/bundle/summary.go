package bundle

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/sienna/internal/estimate"
)

// SummaryCSV renders the two-level budget summary: one row per category and
// subcategory sorted by exported label, then the general summary block.
// Direct cost is recovered from the total so the block reconciles with it.
func SummaryCSV(result *estimate.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	breakdown := result.Breakdown()
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Category.Label() < breakdown[j].Category.Label()
	})

	rows := [][]string{{"PARTIDA", "SUBPARTIDA", "IMPORTE_ESTIMADO"}}
	for _, cat := range breakdown {
		for _, sub := range cat.Subcategories {
			rows = append(rows, []string{cat.Category.Label(), sub.Name, sub.Amount.StringFixed(2)})
		}
	}

	direct := estimate.DirectCostFromTotal(result.Total)
	rows = append(rows,
		[]string{},
		[]string{"RESUMEN GENERAL", "", ""},
		[]string{"COSTO DIRECTO", "", "$" + direct.StringFixed(2)},
		[]string{fmt.Sprintf("INDIRECTOS Y UTILIDAD (%s%%)", estimate.MarkupRate().Shift(2).String()), "", "$" + result.Total.Sub(direct).StringFixed(2)},
		[]string{"TOTAL PRESUPUESTO", "", "$" + result.Total.StringFixed(2)},
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Readme renders the bundle readme.
func Readme(project Project, id string, now time.Time, withBudget bool) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Expediente generado por SIENNA\n")
	fmt.Fprintf(&buf, "Proyecto: %s\n", project.Name)
	if project.Context != "" {
		fmt.Fprintf(&buf, "Contexto: %s\n", project.Context)
	}
	fmt.Fprintf(&buf, "Fecha: %s\n", now.Format("02/01/2006"))
	fmt.Fprintf(&buf, "ID: %s\n\n", id)
	if withBudget {
		fmt.Fprintf(&buf, "La carpeta %s contiene el resumen de costos agrupado por partidas y subpartidas (%s),\n", CostsFolder, SummaryName)
		fmt.Fprintf(&buf, "el presupuesto detallado (%s) y su reporte imprimible (%s).\n", WorkbookName, ReportName)
	} else {
		fmt.Fprintf(&buf, "Este expediente no incluye presupuesto paramétrico.\n")
	}
	return buf.Bytes()
}

package bundle

import (
	"fmt"
	"time"

	"github.com/theirongolddev/sienna/internal/estimate"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var muted = &props.Color{Red: 100, Green: 100, Blue: 100}

// Report renders a printable PDF of the budget summary.
func Report(project Project, result *estimate.Result, now time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   muted,
		}).
		Build()

	m := maroto.New(cfg)
	addReportHeader(m, project, result, now)
	addReportBreakdown(m, result)
	addReportTotals(m, result)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	return doc.GetBytes(), nil
}

func addReportHeader(m core.Maroto, project Project, result *estimate.Result, now time.Time) {
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(text.New(project.Name, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Left})),
			col.New(4).Add(text.New("PRESUPUESTO PARAMÉTRICO", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New(
				fmt.Sprintf("Superficie: %s m2 | Acabado: %s", result.Area.String(), result.Tier.Label()),
				props.Text{Size: 8, Align: align.Left, Color: muted},
			)),
			col.New(4).Add(text.New(now.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Color: muted})),
		),
		row.New(4),
	)
}

func addReportBreakdown(m core.Maroto, result *estimate.Result) {
	header := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	m.AddRows(row.New(7).Add(
		col.New(4).Add(text.New("PARTIDA", header)),
		col.New(5).Add(text.New("SUBPARTIDA", header)),
		col.New(3).Add(text.New("IMPORTE", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
	))

	for _, cat := range result.Breakdown() {
		m.AddRows(row.New(6).Add(
			col.New(9).Add(text.New(cat.Category.Label(), props.Text{Size: 9, Style: fontstyle.Bold})),
			col.New(3).Add(text.New("$"+cat.Amount.StringFixed(2), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		))
		for _, sub := range cat.Subcategories {
			m.AddRows(row.New(5).Add(
				col.New(4),
				col.New(5).Add(text.New(sub.Name, props.Text{Size: 8})),
				col.New(3).Add(text.New("$"+sub.Amount.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			))
		}
	}
	m.AddRows(row.New(4))
}

func addReportTotals(m core.Maroto, result *estimate.Result) {
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}
	for _, line := range [][2]string{
		{"COSTO DIRECTO", result.DirectCost.StringFixed(2)},
		{fmt.Sprintf("INDIRECTOS Y UTILIDAD (%s%%)", estimate.MarkupRate().Shift(2)), result.Markup.StringFixed(2)},
		{"TOTAL PRESUPUESTO", result.Total.StringFixed(2)},
		{"COSTO POR M2", result.UnitCost.StringFixed(2)},
	} {
		m.AddRows(row.New(6).Add(
			col.New(9).Add(text.New(line[0], label)),
			col.New(3).Add(text.New("$"+line[1], value)),
		))
	}
}

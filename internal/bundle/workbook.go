package bundle

import (
	"bytes"
	"fmt"

	"github.com/theirongolddev/sienna/internal/estimate"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	ItemsSheet   = "Presupuesto"
	SummarySheet = "Resumen"
)

// Workbook renders the itemized budget as an XLSX file with an items sheet
// and a category summary sheet.
func Workbook(project Project, result *estimate.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ItemsSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("add summary sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders(), NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// Items sheet.
	sh := ItemsSheet
	if err := f.MergeCell(sh, "A1", "H1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sh, "A1", sanitizeCell(project.Name))
	f.SetCellStyle(sh, "A1", "H1", titleStyle)
	f.SetCellValue(sh, "A2", fmt.Sprintf("Superficie: %s m2  Acabado: %s", result.Area.String(), result.Tier.Label()))

	headers := []string{"Partida", "Subpartida", "Clave", "Concepto", "Unidad", "Cantidad", "P. Unitario", "Importe"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sh, cell, h)
	}
	f.SetCellStyle(sh, "A4", "H4", headerStyle)
	for col, width := range map[string]float64{"A": 16, "B": 22, "C": 22, "D": 48, "E": 8, "F": 12, "G": 14, "H": 16} {
		f.SetColWidth(sh, col, col, width)
	}

	row := 5
	for _, it := range result.Items {
		r := fmt.Sprint(row)
		f.SetCellValue(sh, "A"+r, it.Category.Label())
		f.SetCellValue(sh, "B"+r, it.Subcategory)
		f.SetCellValue(sh, "C"+r, it.CatalogKey)
		f.SetCellValue(sh, "D"+r, sanitizeCell(it.Description))
		f.SetCellValue(sh, "E"+r, it.Unit)
		f.SetCellValue(sh, "F"+r, it.Quantity.InexactFloat64())
		f.SetCellValue(sh, "G"+r, it.UnitPrice.InexactFloat64())
		f.SetCellValue(sh, "H"+r, it.Amount.InexactFloat64())
		f.SetCellStyle(sh, "A"+r, "E"+r, cellStyle)
		f.SetCellStyle(sh, "F"+r, "H"+r, moneyStyle)
		row++
	}

	row++
	for _, line := range []struct {
		label string
		value float64
	}{
		{"Costo directo", result.DirectCost.InexactFloat64()},
		{fmt.Sprintf("Indirectos y utilidad (%s%%)", estimate.MarkupRate().Shift(2)), result.Markup.InexactFloat64()},
		{"Total", result.Total.InexactFloat64()},
		{"Costo por m2", result.UnitCost.InexactFloat64()},
	} {
		r := fmt.Sprint(row)
		f.SetCellValue(sh, "G"+r, line.label)
		f.SetCellValue(sh, "H"+r, line.value)
		f.SetCellStyle(sh, "H"+r, "H"+r, totalStyle)
		row++
	}

	// Summary sheet.
	sh = SummarySheet
	for i, h := range []string{"Partida", "Subpartida", "Importe"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sh, cell, h)
	}
	f.SetCellStyle(sh, "A1", "C1", headerStyle)
	f.SetColWidth(sh, "A", "B", 22)
	f.SetColWidth(sh, "C", "C", 16)

	row = 2
	for _, cat := range result.Breakdown() {
		for _, sub := range cat.Subcategories {
			r := fmt.Sprint(row)
			f.SetCellValue(sh, "A"+r, cat.Category.Label())
			f.SetCellValue(sh, "B"+r, sub.Name)
			f.SetCellValue(sh, "C"+r, sub.Amount.InexactFloat64())
			f.SetCellStyle(sh, "C"+r, "C"+r, moneyStyle)
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}

// sanitizeCell keeps user text from being read as a formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

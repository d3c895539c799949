package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/sienna/internal/catalog"
	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/structure"
)

// RenderBudget renders category subtotals and totals, optionally followed by
// the itemized lines.
func RenderBudget(res estimate.Result, withItems bool) string {
	var b strings.Builder

	b.WriteString(RenderTitle(fmt.Sprintf("Presupuesto paramétrico  %s  %s", FormatArea(res.Area), res.Tier.Label())))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(estimate.Categories)+5)
	for _, c := range estimate.Categories {
		sub := res.Subtotals.Of(c)
		rows = append(rows, []string{c.Label(), FormatMoney(sub), FormatPercent(Share(sub, res.DirectCost))})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Costo directo", FormatMoney(res.DirectCost), ""},
		[]string{fmt.Sprintf("Indirectos y utilidad (%s%%)", estimate.MarkupRate().Shift(2)), FormatMoney(res.Markup), ""},
		[]string{"Total", FormatMoney(res.Total), ""},
		[]string{"Costo por m²", FormatMoney(res.UnitCost), ""},
	)
	b.WriteString(RenderTable(Table{
		Title:   "Partidas",
		Headers: []string{"Partida", "Importe", "%"},
		Rows:    rows,
	}))

	b.WriteString("\n")
	for _, c := range estimate.Categories {
		b.WriteString(RenderHorizontalBar(c.Label(), Share(res.Subtotals.Of(c), res.DirectCost), 30))
		b.WriteString("\n")
	}

	if withItems {
		b.WriteString("\n")
		b.WriteString(RenderItems(res.Items))
	}

	for _, it := range res.Degraded() {
		b.WriteString("\n")
		if it.CatalogMiss {
			b.WriteString(RenderWarning(fmt.Sprintf("%s: clave %s no encontrada en el catálogo", it.Subcategory, it.CatalogKey)))
		} else {
			b.WriteString(RenderWarning(fmt.Sprintf("%s: precio no disponible para %s", it.Subcategory, it.CatalogKey)))
		}
	}
	if len(res.Degraded()) > 0 {
		b.WriteString("\n")
	}

	return b.String()
}

// RenderItems renders one row per line item.
func RenderItems(items []estimate.LineItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		price := FormatMoney(it.UnitPrice)
		if it.PriceUnavailable {
			price = "n/d"
		}
		rows = append(rows, []string{
			it.Subcategory,
			it.CatalogKey,
			FormatQuantity(it.Quantity) + " " + it.Unit,
			price,
			FormatMoney(it.Amount),
			string(it.Choice.Reason),
		})
	}
	return RenderTable(Table{
		Title:   "Conceptos",
		Headers: []string{"Subpartida", "Clave", "Cantidad", "P. Unitario", "Importe", "Origen"},
		Rows:    rows,
	})
}

// RenderCatalog renders catalog entries.
func RenderCatalog(entries []catalog.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		price := FormatMoney(e.UnitPrice)
		if e.PriceUnavailable {
			price = "n/d"
		}
		rows = append(rows, []string{e.Key, truncate(e.Description, 48), e.Unit, price})
	}
	return RenderTable(Table{
		Title:   fmt.Sprintf("Catálogo (%d conceptos)", len(entries)),
		Headers: []string{"Clave", "Concepto", "Unidad", "Precio"},
		Rows:    rows,
	})
}

// FolderTree converts a generated folder tree into renderable nodes under a
// root label.
func FolderTree(root string, t structure.Tree) *TreeNode {
	top := &TreeNode{Name: root}
	index := map[string]*TreeNode{"": top}
	for _, p := range t.Paths() {
		parent, name := "", p
		if i := strings.LastIndex(p, "/"); i >= 0 {
			parent, name = p[:i], p[i+1:]
		}
		node := &TreeNode{Name: name}
		index[p] = node
		if parentNode, ok := index[parent]; ok {
			parentNode.Children = append(parentNode.Children, node)
		}
	}
	return top
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

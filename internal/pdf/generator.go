package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/casafacile/quote-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// Generate renders a quote as a printable document: customer block, item
// table, add-ons, totals, and the estimated work window.
func (g *Generator) Generate(quote model.Quote, owner model.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Preventivo", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("N. %s del %s", shortID(quote.ID.String()), formatDate(quote.CreatedAt)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Stato: %s", quote.Status)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Cliente", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s %s — %s", owner.FirstName, owner.LastName, owner.Email)), "", 1, "L", false, 0, "")
	if owner.Phone != nil {
		pdf.CellFormat(0, 6, tr(*owner.Phone), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Luogo e periodo dei lavori", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(quote.Address), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("dal %s al %s", formatDate(quote.WorkStartDate), formatDate(quote.EstimatedEndDate)), "", 1, "L", false, 0, "")
	if quote.Description != nil {
		pdf.MultiCell(0, 6, tr(*quote.Description), "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Servizi", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Servizio", "Categoria", tr("Unità"), tr("Qtà"), "Prezzo", "Totale"}
	colWidths := []float64{60, 35, 20, 15, 25, 25}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, item := range quote.Items {
		row := []string{
			tr(trim(item.Service.Name, 38)),
			tr(trim(item.Service.Category.Name, 22)),
			tr(item.Service.Unit),
			fmt.Sprintf("%d", item.Quantity),
			formatAmount(item.UnitPrice),
			formatAmount(item.TotalPrice),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	if len(quote.Addons) > 0 {
		pdf.Ln(2)
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Servizi aggiuntivi", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		for _, addon := range quote.Addons {
			pdf.CellFormat(130, 6, tr(trim(addon.Addon.Name, 70)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, formatAmount(addon.Price), "1", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, formatEuro(tr, "Totale", quote.TotalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generato il %s", time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cells []string, widths []float64, header bool) {
	if header {
		pdf.SetFont(fontName, "B", 10)
		pdf.SetFillColor(230, 230, 230)
	} else {
		pdf.SetFont(fontName, "", 10)
	}
	for i, cell := range cells {
		align := "L"
		if i >= 3 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, cell, "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func formatEuro(tr func(string) string, label string, amount decimal.Decimal) string {
	return tr(fmt.Sprintf("%s: € %s", label, amount.StringFixed(2)))
}

func shortID(id string) string {
	return strings.SplitN(id, "-", 2)[0]
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

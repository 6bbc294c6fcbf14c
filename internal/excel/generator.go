package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/casafacile/quote-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the owner's quotes to a workbook: a summary sheet plus
// one detail sheet per quote.
func (g *Generator) Generate(quotes []model.Quote, owner model.User) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Riepilogo"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, quotes, owner); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, quote := range quotes {
		sheetName := buildSheetName(quote, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, quote); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, quotes []model.Quote, owner model.User) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	total := decimal.Zero
	for _, quote := range quotes {
		total = total.Add(quote.TotalAmount)
	}

	set("A1", "Cliente")
	set("B1", fmt.Sprintf("%s %s", owner.FirstName, owner.LastName))
	set("A2", "Email")
	set("B2", owner.Email)
	set("A3", "Numero preventivi")
	set("B3", len(quotes))
	set("A4", "Importo complessivo")
	set("B4", total.StringFixed(2))

	tableRow := 6
	headers := []string{"Numero", "Data", "Stato", "Inizio lavori", "Fine stimata", "Totale"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, quote := range quotes {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), shortID(quote.ID.String()))
		set(fmt.Sprintf("B%d", row), formatDate(quote.CreatedAt))
		set(fmt.Sprintf("C%d", row), string(quote.Status))
		set(fmt.Sprintf("D%d", row), formatDate(quote.WorkStartDate))
		set(fmt.Sprintf("E%d", row), formatDate(quote.EstimatedEndDate))
		set(fmt.Sprintf("F%d", row), quote.TotalAmount.StringFixed(2))
	}

	_ = file.SetColWidth(sheet, "A", "A", 22)
	_ = file.SetColWidth(sheet, "B", "E", 14)
	_ = file.SetColWidth(sheet, "F", "F", 12)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, quote model.Quote) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Preventivo")
	set("B1", shortID(quote.ID.String()))
	set("A2", "Stato")
	set("B2", string(quote.Status))
	set("A3", "Indirizzo")
	set("B3", quote.Address)
	set("A4", "Inizio lavori")
	set("B4", formatDate(quote.WorkStartDate))
	set("A5", "Fine stimata")
	set("B5", formatDate(quote.EstimatedEndDate))
	set("A6", "Totale")
	set("B6", quote.TotalAmount.StringFixed(2))

	tableRow := 8
	headers := []string{"Servizio", "Categoria", "Unità", "Quantità", "Prezzo unitario", "Totale riga"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	row := tableRow
	for _, item := range quote.Items {
		row++
		set(fmt.Sprintf("A%d", row), item.Service.Name)
		set(fmt.Sprintf("B%d", row), item.Service.Category.Name)
		set(fmt.Sprintf("C%d", row), item.Service.Unit)
		set(fmt.Sprintf("D%d", row), item.Quantity)
		set(fmt.Sprintf("E%d", row), item.UnitPrice.StringFixed(2))
		set(fmt.Sprintf("F%d", row), item.TotalPrice.StringFixed(2))
	}

	for _, addon := range quote.Addons {
		row++
		set(fmt.Sprintf("A%d", row), addon.Addon.Name)
		set(fmt.Sprintf("B%d", row), "Servizio aggiuntivo")
		set(fmt.Sprintf("D%d", row), 1)
		set(fmt.Sprintf("E%d", row), addon.Price.StringFixed(2))
		set(fmt.Sprintf("F%d", row), addon.Price.StringFixed(2))
	}

	_ = file.SetColWidth(sheet, "A", "B", 32)
	_ = file.SetColWidth(sheet, "C", "D", 12)
	_ = file.SetColWidth(sheet, "E", "F", 15)
	return nil
}

func buildSheetName(quote model.Quote, used map[string]struct{}) string {
	base := sanitizeSheetName(fmt.Sprintf("Preventivo %s", shortID(quote.ID.String())))
	if len(base) > 31 {
		base = base[:31]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Foglio"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Foglio"
	}
	return value
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func shortID(id string) string {
	return strings.SplitN(id, "-", 2)[0]
}

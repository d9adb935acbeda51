// Package pdfreport gera o resumo do painel em PDF
package pdfreport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
)

// FileName do relatório para o ano selecionado
func FileName(year string) string {
	if year == "" {
		year = domain.FilterAll
	}
	return fmt.Sprintf("dashboard-%s.pdf", year)
}

// BuildDashboardPDF gera uma página com os totais e a lista de vendas filtradas
func BuildDashboardPDF(d *domain.Dashboard, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Resale Ledger Dashboard", false)
	pdf.AddPage()

	// As fontes padrão usam cp1252; textos do usuário passam pelo tradutor
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Resale Ledger")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Year: %s   Platform: %s", valueOrAll(d.Filters.Year), valueOrAll(d.Filters.Platform)))
	pdf.Ln(6)
	if d.Filters.StartDate != "" || d.Filters.EndDate != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Period: %s - %s", d.Filters.StartDate, d.Filters.EndDate))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, "Generated at "+generatedAt.Format(time.RFC1123))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Totals")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	totals := []struct {
		label string
		value float64
	}{
		{"Total sales", d.Stats.TotalSales},
		{"Platform fees", d.Stats.TotalFees},
		{"Expenses", d.Stats.TotalExpenses},
		{"Inventory value", d.Stats.InventoryValue},
		{"Net profit", d.Stats.NetProfit},
	}
	for _, t := range totals {
		pdf.Cell(60, 7, t.label)
		pdf.Cell(40, 7, fmt.Sprintf("$%.2f", t.value))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Sales (%d)", len(d.Sales)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(25, 7, "Date")
	pdf.Cell(70, 7, "Item")
	pdf.Cell(25, 7, "Platform")
	pdf.Cell(25, 7, "Price")
	pdf.Cell(25, 7, "Profit")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, s := range d.Sales {
		pdf.Cell(25, 6, s.SaleDate)
		pdf.Cell(70, 6, cellText(tr, s.ItemName, 38))
		pdf.Cell(25, 6, string(s.Platform))
		pdf.Cell(25, 6, fmt.Sprintf("$%.2f", s.SalePrice))
		pdf.Cell(25, 6, fmt.Sprintf("$%.2f", s.Profit))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func valueOrAll(v string) string {
	if v == "" {
		return domain.FilterAll
	}
	return v
}

// cellText corta pelo número de runas antes de converter, para não partir um caractere
func cellText(tr func(string) string, s string, max int) string {
	return tr(truncate(s, max))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

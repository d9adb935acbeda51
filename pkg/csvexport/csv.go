// Package csvexport serializa as coleções filtradas em CSV para download
package csvexport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
)

var ErrUnknownCollection = errors.New("unknown collection")

// Nomes das coleções exportáveis
const (
	CollectionSales     = "sales"
	CollectionInventory = "inventory"
	CollectionExpenses  = "expenses"
)

// Serialize gera o CSV com todas as células entre aspas e aspas internas duplicadas.
// As linhas são separadas por \n, sem quebra no final.
func Serialize(headers []string, rows [][]string) string {
	var sb strings.Builder
	writeRow(&sb, headers)
	for _, row := range rows {
		sb.WriteByte('\n')
		writeRow(&sb, row)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		sb.WriteByte('"')
	}
}

// FormatMoney formata valores monetários com duas casas decimais, sem "-0.00"
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", utils.RoundWithTwoDecimalPlace(v))
}

// FileName devolve o nome do arquivo. Vendas e despesas levam o ano selecionado.
func FileName(collection, year string) string {
	if collection == CollectionInventory {
		return "inventory.csv"
	}
	if year == "" {
		year = domain.FilterAll
	}
	return fmt.Sprintf("%s-%s.csv", collection, year)
}

func SalesTable(sales []*domain.Sale) ([]string, [][]string) {
	headers := []string{"Date", "Item", "Platform", "Sale Price", "Platform Fee", "Item Cost", "Shipping Cost", "Profit", "Status"}

	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.SaleDate,
			s.ItemName,
			string(s.Platform),
			FormatMoney(s.SalePrice),
			FormatMoney(s.PlatformFee),
			FormatMoney(s.ItemCost),
			FormatMoney(s.ShippingCost),
			FormatMoney(s.Profit),
			s.Status,
		})
	}
	return headers, rows
}

func InventoryTable(items []*domain.InventoryItem) ([]string, [][]string) {
	headers := []string{"Item", "Item Cost", "Platforms", "Date Added", "Personal"}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		platforms := make([]string, 0, len(item.Platforms))
		for _, p := range item.Platforms {
			platforms = append(platforms, string(p))
		}

		dateAdded := ""
		if item.DateAdded != nil {
			dateAdded = *item.DateAdded
		}

		rows = append(rows, []string{
			item.ItemName,
			FormatMoney(item.ItemCost),
			strings.Join(platforms, ", "),
			dateAdded,
			yesNo(item.IsPersonal()),
		})
	}
	return headers, rows
}

func ExpensesTable(expenses []*domain.Expense) ([]string, [][]string) {
	headers := []string{"Date", "Name", "Amount"}

	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{e.DateAdded, e.Name, FormatMoney(e.Amount)})
	}
	return headers, rows
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// IsCollection indica se a coleção pode ser exportada
func IsCollection(collection string) bool {
	switch collection {
	case CollectionSales, CollectionInventory, CollectionExpenses:
		return true
	}
	return false
}

// Collection serializa a coleção pedida a partir do painel já filtrado
func Collection(collection string, dashboard *domain.Dashboard) (string, error) {
	switch collection {
	case CollectionSales:
		return Serialize(SalesTable(dashboard.Sales)), nil
	case CollectionInventory:
		return Serialize(InventoryTable(dashboard.Inventory)), nil
	case CollectionExpenses:
		return Serialize(ExpensesTable(dashboard.Expenses)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
}

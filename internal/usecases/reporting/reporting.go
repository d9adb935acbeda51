// Package reporting filtra as coleções do painel e calcula os totais
package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
)

// FilterSales aplica busca, plataforma, período e ano e ordena por nome do item
func FilterSales(sales []*domain.Sale, f domain.Filters) []*domain.Sale {
	filtered := make([]*domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if !matchesSearch(sale.ItemName, f.Search) {
			continue
		}
		if !f.AllPlatforms() && string(sale.Platform) != f.Platform {
			continue
		}
		if !inDateRange(sale.SaleDate, f) || !inYear(sale.SaleDate, f) {
			continue
		}
		filtered = append(filtered, sale)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return lessName(filtered[i].ItemName, filtered[j].ItemName)
	})

	return filtered
}

// FilterInventory não aplica o filtro de ano: o estoque é o estado atual, não histórico
func FilterInventory(items []*domain.InventoryItem, f domain.Filters) []*domain.InventoryItem {
	filtered := make([]*domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item.ItemName, f.Search) {
			continue
		}
		if !f.AllPlatforms() && !item.ListedOn(domain.Platform(f.Platform)) {
			continue
		}

		dateAdded := ""
		if item.DateAdded != nil {
			dateAdded = *item.DateAdded
		}
		if !inDateRange(dateAdded, f) {
			continue
		}
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return lessName(filtered[i].ItemName, filtered[j].ItemName)
	})

	return filtered
}

// FilterExpenses mantém a ordem de chegada. Despesas não têm plataforma.
func FilterExpenses(expenses []*domain.Expense, f domain.Filters) []*domain.Expense {
	filtered := make([]*domain.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if !matchesSearch(expense.Name, f.Search) {
			continue
		}
		if !inDateRange(expense.DateAdded, f) || !inYear(expense.DateAdded, f) {
			continue
		}
		filtered = append(filtered, expense)
	}
	return filtered
}

// Aggregate calcula os totais a partir das vendas e despesas filtradas.
// O valor do estoque considera sempre todos os itens.
func Aggregate(sales []*domain.Sale, expenses []*domain.Expense, inventory []*domain.InventoryItem) domain.DashboardStats {
	totalSales := decimal.Zero
	totalFees := decimal.Zero
	totalProfit := decimal.Zero
	for _, sale := range sales {
		totalSales = totalSales.Add(decimal.NewFromFloat(sale.SalePrice))
		totalFees = totalFees.Add(decimal.NewFromFloat(sale.PlatformFee))
		totalProfit = totalProfit.Add(decimal.NewFromFloat(sale.Profit))
	}

	totalExpenses := decimal.Zero
	for _, expense := range expenses {
		totalExpenses = totalExpenses.Add(decimal.NewFromFloat(expense.Amount))
	}

	inventoryValue := decimal.Zero
	for _, item := range inventory {
		inventoryValue = inventoryValue.Add(decimal.NewFromFloat(item.ItemCost))
	}

	return domain.DashboardStats{
		TotalSales:     totalSales.InexactFloat64(),
		TotalFees:      totalFees.InexactFloat64(),
		TotalExpenses:  totalExpenses.InexactFloat64(),
		InventoryValue: inventoryValue.InexactFloat64(),
		NetProfit:      totalProfit.Sub(totalExpenses).InexactFloat64(),
		SalesCount:     len(sales),
		InventoryCount: len(inventory),
		ExpensesCount:  len(expenses),
	}
}

// AvailableYears lista os anos distintos presentes nas três coleções, do mais recente
// para o mais antigo. Sem nenhuma data, devolve o ano corrente.
func AvailableYears(snapshot *domain.Snapshot, now time.Time) []string {
	seen := make(map[string]struct{})
	add := func(date string) {
		if len(date) >= 4 {
			seen[date[:4]] = struct{}{}
		}
	}

	for _, sale := range snapshot.Sales {
		add(sale.SaleDate)
	}
	for _, item := range snapshot.Inventory {
		if item.DateAdded != nil {
			add(*item.DateAdded)
		}
	}
	for _, expense := range snapshot.Expenses {
		add(expense.DateAdded)
	}

	if len(seen) == 0 {
		return []string{now.Format("2006")}
	}

	years := make([]string, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	return years
}

// Build monta o painel completo para uma configuração de filtros
func Build(snapshot *domain.Snapshot, f domain.Filters, now time.Time) *domain.Dashboard {
	sales := FilterSales(snapshot.Sales, f)
	inventory := FilterInventory(snapshot.Inventory, f)
	expenses := FilterExpenses(snapshot.Expenses, f)

	stats := Aggregate(sales, expenses, snapshot.Inventory)
	// A contagem de estoque segue o que aparece na aba; o valor segue o estoque todo
	stats.InventoryCount = len(inventory)

	return &domain.Dashboard{
		Filters:        f,
		Stats:          stats,
		AvailableYears: AvailableYears(snapshot, now),
		Sales:          sales,
		Inventory:      inventory,
		Expenses:       expenses,
	}
}

func matchesSearch(name, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

// Datas yyyy-mm-dd comparam corretamente como texto
func inDateRange(date string, f domain.Filters) bool {
	if f.StartDate != "" && (date == "" || date < f.StartDate) {
		return false
	}
	if f.EndDate != "" && (date == "" || date > f.EndDate) {
		return false
	}
	return true
}

func inYear(date string, f domain.Filters) bool {
	if f.AllYears() {
		return true
	}
	return strings.HasPrefix(date, f.Year)
}

func lessName(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

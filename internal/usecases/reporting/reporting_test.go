package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
)

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Sales: []*domain.Sale{
			{ID: "s1", ItemName: "vintage Levi's", Platform: domain.PlatformEbay, SaleDate: "2025-03-14", SalePrice: 100, PlatformFee: 14, Profit: 60},
			{ID: "s2", ItemName: "Nike Dunk", Platform: domain.PlatformDepop, SaleDate: "2024-11-02", SalePrice: 50, PlatformFee: 2.1, Profit: 27.9},
			{ID: "s3", ItemName: "Coach bag", Platform: domain.PlatformPoshmark, SaleDate: "2025-07-01", SalePrice: 40, PlatformFee: 8, Profit: 20},
		},
		Inventory: []*domain.InventoryItem{
			{ID: "i1", ItemName: "Patagonia fleece", ItemCost: 15, Platforms: []domain.Platform{domain.PlatformEbay, domain.PlatformMercari}, DateAdded: utils.StringPtr("2023-05-01")},
			{ID: "i2", ItemName: "Old Navy tee", ItemCost: 0, Platforms: []domain.Platform{domain.PlatformDepop}},
			{ID: "i3", ItemName: "adidas track jacket", ItemCost: 12.5, Platforms: []domain.Platform{domain.PlatformDepop, domain.PlatformPoshmark}, DateAdded: utils.StringPtr("2025-02-10")},
		},
		Expenses: []*domain.Expense{
			{ID: "e2", Name: "Shipping supplies", Amount: 30, DateAdded: "2025-02-01"},
			{ID: "e1", Name: "Bulk lot", Amount: 120, DateAdded: "2024-12-20"},
		},
	}
}

func saleIDs(sales []*domain.Sale) []string {
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	return ids
}

func itemIDs(items []*domain.InventoryItem) []string {
	ids := make([]string, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.ID)
	}
	return ids
}

func TestFilterSales(t *testing.T) {
	snapshot := sampleSnapshot()

	tests := []struct {
		name     string
		filters  domain.Filters
		expected []string
	}{
		{name: "Sem filtros ordena por nome", filters: domain.DefaultFilters(domain.FilterAll), expected: []string{"s3", "s2", "s1"}},
		{name: "Busca sem diferenciar maiúsculas", filters: domain.Filters{Search: "LEVI", Year: "all"}, expected: []string{"s1"}},
		{name: "Plataforma", filters: domain.Filters{Platform: "Depop", Year: "all"}, expected: []string{"s2"}},
		{name: "Ano por prefixo", filters: domain.Filters{Year: "2025"}, expected: []string{"s3", "s1"}},
		{name: "Ano sem registros", filters: domain.Filters{Year: "2023"}, expected: []string{}},
		{name: "Período inclusivo", filters: domain.Filters{StartDate: "2025-03-14", EndDate: "2025-07-01", Year: "all"}, expected: []string{"s3", "s1"}},
		{name: "Somente início", filters: domain.Filters{StartDate: "2025-04-01", Year: "all"}, expected: []string{"s3"}},
		{name: "Somente fim", filters: domain.Filters{EndDate: "2024-12-31", Year: "all"}, expected: []string{"s2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, saleIDs(FilterSales(snapshot.Sales, tt.filters)))
		})
	}
}

func TestFilterSales_YearPrefix(t *testing.T) {
	sales := []*domain.Sale{{ID: "s1", ItemName: "x", SaleDate: "2025-03-14"}}

	assert.Len(t, FilterSales(sales, domain.Filters{Year: "2025"}), 1)
	assert.Len(t, FilterSales(sales, domain.Filters{Year: "all"}), 1)
	assert.Len(t, FilterSales(sales, domain.Filters{Year: "2024"}), 0)
	assert.Len(t, FilterSales(sales, domain.Filters{Year: "2026"}), 0)
}

func TestFilterSales_Idempotent(t *testing.T) {
	snapshot := sampleSnapshot()
	f := domain.Filters{Search: "o", Platform: "all", Year: "2025"}

	first := FilterSales(snapshot.Sales, f)
	second := FilterSales(snapshot.Sales, f)
	assert.Equal(t, saleIDs(first), saleIDs(second))

	// Filtrar o resultado de novo não muda nada
	assert.Equal(t, saleIDs(first), saleIDs(FilterSales(first, f)))
}

func TestFilterSales_ClearedKeepsYear(t *testing.T) {
	snapshot := sampleSnapshot()
	f := domain.Filters{Search: "coach", Platform: "Poshmark", StartDate: "2025-06-01", Year: "2025"}

	cleared := f.Cleared()
	assert.Equal(t, "2025", cleared.Year)
	assert.Equal(t, []string{"s3", "s1"}, saleIDs(FilterSales(snapshot.Sales, cleared)))
}

func TestFilterSales_DoesNotMutateInput(t *testing.T) {
	snapshot := sampleSnapshot()
	FilterSales(snapshot.Sales, domain.DefaultFilters("all"))

	assert.Equal(t, []string{"s1", "s2", "s3"}, saleIDs(snapshot.Sales))
}

func TestFilterInventory(t *testing.T) {
	snapshot := sampleSnapshot()

	// Ano não se aplica ao estoque
	assert.Equal(t, []string{"i3", "i2", "i1"}, itemIDs(FilterInventory(snapshot.Inventory, domain.Filters{Year: "1999"})))

	// Plataforma verifica o conjunto de anúncios
	assert.Equal(t, []string{"i3", "i2"}, itemIDs(FilterInventory(snapshot.Inventory, domain.Filters{Platform: "Depop"})))
	assert.Equal(t, []string{"i1"}, itemIDs(FilterInventory(snapshot.Inventory, domain.Filters{Platform: "Mercari"})))

	// Itens sem data ficam de fora quando há período
	assert.Equal(t, []string{"i3"}, itemIDs(FilterInventory(snapshot.Inventory, domain.Filters{StartDate: "2025-01-01"})))
}

func TestFilterExpenses_KeepsArrivalOrder(t *testing.T) {
	snapshot := sampleSnapshot()

	filtered := FilterExpenses(snapshot.Expenses, domain.Filters{Platform: "eBay", Year: "all"})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "e2", filtered[0].ID)
	assert.Equal(t, "e1", filtered[1].ID)

	filtered = FilterExpenses(snapshot.Expenses, domain.Filters{Search: "bulk", Year: "2024"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "e1", filtered[0].ID)
}

func TestAggregate(t *testing.T) {
	snapshot := sampleSnapshot()

	stats := Aggregate(snapshot.Sales, snapshot.Expenses, snapshot.Inventory)
	assert.Equal(t, 190.0, stats.TotalSales)
	assert.Equal(t, 24.1, stats.TotalFees)
	assert.Equal(t, 150.0, stats.TotalExpenses)
	assert.Equal(t, 27.5, stats.InventoryValue)
	assert.Equal(t, 107.9-150, stats.NetProfit)
	assert.Equal(t, 3, stats.SalesCount)
}

func TestBuild_InventoryValueIgnoresFilters(t *testing.T) {
	snapshot := sampleSnapshot()
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	dashboard := Build(snapshot, domain.Filters{Search: "patagonia", Year: "2025"}, now)

	assert.Len(t, dashboard.Inventory, 1)
	assert.Equal(t, 1, dashboard.Stats.InventoryCount)
	assert.Equal(t, 27.5, dashboard.Stats.InventoryValue)
	assert.Empty(t, dashboard.Sales)
	assert.Equal(t, 0.0, dashboard.Stats.TotalSales)
	assert.Equal(t, 0.0, dashboard.Stats.NetProfit)
	assert.Equal(t, []string{"2025", "2024", "2023"}, dashboard.AvailableYears)
}

func TestAvailableYears_DefaultsToCurrentYear(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"2026"}, AvailableYears(&domain.Snapshot{}, now))
}

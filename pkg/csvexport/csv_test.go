package csvexport

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
)

func TestSerialize(t *testing.T) {
	out := Serialize([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})

	assert.Equal(t, "\"a\",\"b\"\n\"1\",\"2\"\n\"3\",\"4\"", out)
}

func TestSerialize_EscapesQuotes(t *testing.T) {
	original := `12" vinyl, "mint"`

	out := Serialize([]string{"Item"}, [][]string{{original}})
	assert.Equal(t, "\"Item\"\n\"12\"\" vinyl, \"\"mint\"\"\"", out)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, records[1], 1)
	assert.Equal(t, original, records[1][0])
}

func TestSerialize_HeadersOnly(t *testing.T) {
	assert.Equal(t, `"Date","Name","Amount"`, Serialize(ExpensesTable(nil)))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "sales-2025.csv", FileName(CollectionSales, "2025"))
	assert.Equal(t, "expenses-all.csv", FileName(CollectionExpenses, "all"))
	assert.Equal(t, "expenses-all.csv", FileName(CollectionExpenses, ""))
	assert.Equal(t, "inventory.csv", FileName(CollectionInventory, "2025"))
}

func TestSalesTable(t *testing.T) {
	headers, rows := SalesTable([]*domain.Sale{{
		ItemName:    "Nike Dunk",
		Platform:    domain.PlatformDepop,
		SaleDate:    "2025-03-14",
		SalePrice:   50,
		PlatformFee: 2.1,
		ItemCost:    20,
		Profit:      27.9,
		Status:      domain.SaleStatusSold,
	}})

	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(headers))
	assert.Equal(t, []string{"2025-03-14", "Nike Dunk", "Depop", "50.00", "2.10", "20.00", "0.00", "27.90", "Sold"}, rows[0])
}

func TestInventoryTable(t *testing.T) {
	_, rows := InventoryTable([]*domain.InventoryItem{
		{ItemName: "Fleece", ItemCost: 15, Platforms: []domain.Platform{domain.PlatformEbay, domain.PlatformMercari}, DateAdded: utils.StringPtr("2025-01-02")},
		{ItemName: "Tee"},
	})

	assert.Equal(t, []string{"Fleece", "15.00", "eBay, Mercari", "2025-01-02", "No"}, rows[0])
	assert.Equal(t, []string{"Tee", "0.00", "", "", "Yes"}, rows[1])
}

func TestCollection(t *testing.T) {
	dashboard := &domain.Dashboard{Expenses: []*domain.Expense{{Name: "Tape", Amount: 4.5, DateAdded: "2025-02-01"}}}

	out, err := Collection(CollectionExpenses, dashboard)
	require.NoError(t, err)
	assert.Equal(t, "\"Date\",\"Name\",\"Amount\"\n\"2025-02-01\",\"Tape\",\"4.50\"", out)
	assert.True(t, IsCollection(CollectionExpenses))

	_, err = Collection("users", dashboard)
	assert.ErrorIs(t, err, ErrUnknownCollection)
	assert.False(t, IsCollection("users"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "14.00", FormatMoney(14))
	assert.Equal(t, "2.10", FormatMoney(2.0999999))
	assert.Equal(t, "0.00", FormatMoney(-0.001))
	assert.Equal(t, "-3.25", FormatMoney(-3.25))
}

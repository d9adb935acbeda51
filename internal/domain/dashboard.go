package domain

// Snapshot contém as três coleções completas carregadas do record store
type Snapshot struct {
	Sales     []*Sale
	Inventory []*InventoryItem
	Expenses  []*Expense
}

type DashboardStats struct {
	TotalSales     float64 `json:"total_sales"`
	TotalFees      float64 `json:"total_fees"`
	TotalExpenses  float64 `json:"total_expenses"`
	InventoryValue float64 `json:"inventory_value"`
	NetProfit      float64 `json:"net_profit"`
	SalesCount     int     `json:"sales_count"`
	InventoryCount int     `json:"inventory_count"`
	ExpensesCount  int     `json:"expenses_count"`
}

type Dashboard struct {
	Filters        Filters          `json:"filters"`
	Stats          DashboardStats   `json:"stats"`
	AvailableYears []string         `json:"available_years"`
	Sales          []*Sale          `json:"sales"`
	Inventory      []*InventoryItem `json:"inventory"`
	Expenses       []*Expense       `json:"expenses"`
}

// Export é um arquivo pronto para download
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}

package domain

import "time"

type InventoryItem struct {
	ID        string     `json:"id"`
	ItemName  string     `json:"item_name"`
	ItemCost  float64    `json:"item_cost"`
	Platforms []Platform `json:"platforms"` // Marketplaces onde o item está anunciado
	DateAdded *string    `json:"date_added"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsPersonal indica um item pessoal, sem custo de aquisição e portanto não tributável
func (i *InventoryItem) IsPersonal() bool {
	return i.ItemCost == 0
}

// ListedOn verifica se o item está anunciado na plataforma
func (i *InventoryItem) ListedOn(platform Platform) bool {
	for _, p := range i.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

type CreateInventoryItemRequest struct {
	ItemName  string      `json:"item_name"`
	ItemCost  AmountInput `json:"item_cost"`
	Platforms []string    `json:"platforms"`
	DateAdded string      `json:"date_added"`
}

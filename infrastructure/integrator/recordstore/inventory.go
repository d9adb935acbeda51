package recordstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
)

const inventoryTable = "inventory"

type inventoryRecord struct {
	ItemName  string            `json:"item_name"`
	ItemCost  float64           `json:"item_cost"`
	Platforms []domain.Platform `json:"platforms"`
	DateAdded *string           `json:"date_added"`
}

type inventoryRepository struct {
	client *Client
}

func NewInventoryRepository(client *Client) repository.InventoryRepository {
	return &inventoryRepository{client: client}
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	record := inventoryRecord{
		ItemName:  item.ItemName,
		ItemCost:  item.ItemCost,
		Platforms: item.Platforms,
		DateAdded: item.DateAdded,
	}
	if record.Platforms == nil {
		record.Platforms = []domain.Platform{}
	}

	var created []*domain.InventoryItem
	if err := r.client.Insert(ctx, inventoryTable, record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.New("record store não devolveu o item criado")
	}

	return normalizeItem(created[0]), nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	items := make([]*domain.InventoryItem, 0)
	if err := r.client.Select(ctx, inventoryTable, "created_at.desc", &items); err != nil {
		return nil, err
	}

	for _, item := range items {
		normalizeItem(item)
	}
	return items, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var items []*domain.InventoryItem
	if err := r.client.SelectByID(ctx, inventoryTable, id, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return normalizeItem(items[0]), nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	var deleted []*domain.InventoryItem
	if err := r.client.Delete(ctx, inventoryTable, id, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// normalizeItem troca a coluna de plataformas nula por conjunto vazio
func normalizeItem(item *domain.InventoryItem) *domain.InventoryItem {
	if item.Platforms == nil {
		item.Platforms = []domain.Platform{}
	}
	return item
}

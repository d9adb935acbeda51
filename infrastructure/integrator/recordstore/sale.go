package recordstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
)

const salesTable = "sales"

// saleRecord é o corpo de inserção: id e created_at ficam a cargo do serviço
type saleRecord struct {
	ItemName       string   `json:"item_name"`
	Platform       string   `json:"platform"`
	SaleDate       string   `json:"sale_date"`
	SalePrice      float64  `json:"sale_price"`
	PlatformFee    float64  `json:"platform_fee"`
	ItemCost       float64  `json:"item_cost"`
	ShippingCost   float64  `json:"shipping_cost"`
	Profit         float64  `json:"profit"`
	GrossTotal     *float64 `json:"gross_total"`
	ActualReceived *float64 `json:"actual_received"`
	Status         string   `json:"status"`
	ConvertedFrom  *string  `json:"converted_from"`
}

type saleRepository struct {
	client *Client
}

func NewSaleRepository(client *Client) repository.SaleRepository {
	return &saleRepository{client: client}
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	record := saleRecord{
		ItemName:       sale.ItemName,
		Platform:       string(sale.Platform),
		SaleDate:       sale.SaleDate,
		SalePrice:      sale.SalePrice,
		PlatformFee:    sale.PlatformFee,
		ItemCost:       sale.ItemCost,
		ShippingCost:   sale.ShippingCost,
		Profit:         sale.Profit,
		GrossTotal:     sale.GrossTotal,
		ActualReceived: sale.ActualReceived,
		Status:         sale.Status,
		ConvertedFrom:  sale.ConvertedFrom,
	}

	var created []*domain.Sale
	if err := r.client.Insert(ctx, salesTable, record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.New("record store não devolveu a venda criada")
	}

	return created[0], nil
}

func (r *saleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	sales := make([]*domain.Sale, 0)
	if err := r.client.Select(ctx, salesTable, "sale_date.desc", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *saleRepository) Delete(ctx context.Context, id string) error {
	var deleted []*domain.Sale
	if err := r.client.Delete(ctx, salesTable, id, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

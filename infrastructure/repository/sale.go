package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	List(ctx context.Context) ([]*domain.Sale, error)
	Delete(ctx context.Context, id string) error
}

type saleRepository struct {
	conn database.Conn
}

func NewSaleRepository(conn database.Conn) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

var saleColumns = []string{
	"id", "item_name", "platform", "sale_date", "sale_price", "platform_fee", "item_cost",
	"shipping_cost", "profit", "gross_total", "actual_received", "status", "converted_from", "created_at",
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da venda: %w", err)
	}

	created := *sale
	created.ID = id
	created.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	query, args, err := squirrel.
		Insert(salesTable).
		Columns(saleColumns...).
		Values(
			created.ID,
			created.ItemName,
			string(created.Platform),
			created.SaleDate,
			created.SalePrice,
			created.PlatformFee,
			created.ItemCost,
			created.ShippingCost,
			created.Profit,
			created.GrossTotal,
			created.ActualReceived,
			created.Status,
			created.ConvertedFrom,
			formatTimestamp(created.CreatedAt),
		).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir venda: %w", err)
	}

	return &created, nil
}

// List devolve as vendas da mais recente para a mais antiga
func (r *saleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		OrderBy("sale_date DESC", "created_at DESC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover venda: %w", err)
	}

	return checkAffected(result)
}

func scanSale(rows *sql.Rows) (*domain.Sale, error) {
	var (
		sale           domain.Sale
		platform       string
		grossTotal     sql.NullFloat64
		actualReceived sql.NullFloat64
		convertedFrom  sql.NullString
		createdAt      string
	)

	err := rows.Scan(
		&sale.ID,
		&sale.ItemName,
		&platform,
		&sale.SaleDate,
		&sale.SalePrice,
		&sale.PlatformFee,
		&sale.ItemCost,
		&sale.ShippingCost,
		&sale.Profit,
		&grossTotal,
		&actualReceived,
		&sale.Status,
		&convertedFrom,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	sale.Platform = domain.Platform(platform)
	sale.GrossTotal = nullableFloat(grossTotal)
	sale.ActualReceived = nullableFloat(actualReceived)
	sale.ConvertedFrom = nullableString(convertedFrom)

	sale.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

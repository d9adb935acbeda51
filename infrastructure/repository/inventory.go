package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]*domain.InventoryItem, error)
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

type inventoryRepository struct {
	conn database.Conn
}

func NewInventoryRepository(conn database.Conn) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

var inventoryColumns = []string{"id", "item_name", "item_cost", "platforms", "date_added", "created_at"}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do item: %w", err)
	}

	created := *item
	created.ID = id
	created.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if created.Platforms == nil {
		created.Platforms = []domain.Platform{}
	}

	// O conjunto de plataformas é gravado como array JSON
	platforms, err := json.Marshal(created.Platforms)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar plataformas: %w", err)
	}

	query, args, err := squirrel.
		Insert(inventoryTable).
		Columns(inventoryColumns...).
		Values(created.ID, created.ItemName, created.ItemCost, string(platforms), created.DateAdded, formatTimestamp(created.CreatedAt)).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir item de estoque: %w", err)
	}

	return &created, nil
}

// List devolve o estoque do item mais recente para o mais antigo
func (r *inventoryRepository) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	query, args, err := squirrel.
		Select(inventoryColumns...).
		From(inventoryTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar estoque: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.InventoryItem, 0)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item de estoque: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	query, args, err := squirrel.
		Select(inventoryColumns...).
		From(inventoryTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar item de estoque: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("erro ao buscar item de estoque: %w", err)
		}
		return nil, ErrNotFound
	}

	item, err := scanInventoryItem(rows)
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear item de estoque: %w", err)
	}

	return item, nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(inventoryTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover item de estoque: %w", err)
	}

	return checkAffected(result)
}

func scanInventoryItem(rows *sql.Rows) (*domain.InventoryItem, error) {
	var (
		item      domain.InventoryItem
		platforms string
		dateAdded sql.NullString
		createdAt string
	)

	if err := rows.Scan(&item.ID, &item.ItemName, &item.ItemCost, &platforms, &dateAdded, &createdAt); err != nil {
		return nil, err
	}

	item.Platforms = []domain.Platform{}
	if platforms != "" {
		if err := json.Unmarshal([]byte(platforms), &item.Platforms); err != nil {
			return nil, fmt.Errorf("plataformas inválidas: %w", err)
		}
	}
	item.DateAdded = nullableString(dateAdded)

	var err error
	item.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

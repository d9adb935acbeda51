package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	List(ctx context.Context) ([]*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

type expenseRepository struct {
	conn database.Conn
}

func NewExpenseRepository(conn database.Conn) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

var expenseColumns = []string{"id", "name", "amount", "date_added", "created_at"}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da despesa: %w", err)
	}

	created := *expense
	created.ID = id
	created.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	query, args, err := squirrel.
		Insert(expensesTable).
		Columns(expenseColumns...).
		Values(created.ID, created.Name, created.Amount, created.DateAdded, formatTimestamp(created.CreatedAt)).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir despesa: %w", err)
	}

	return &created, nil
}

// List devolve as despesas pela data, da mais recente para a mais antiga
func (r *expenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	query, args, err := squirrel.
		Select(expenseColumns...).
		From(expensesTable).
		OrderBy("date_added DESC", "created_at DESC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar despesas: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		var (
			expense   domain.Expense
			createdAt string
		)
		if err := rows.Scan(&expense.ID, &expense.Name, &expense.Amount, &expense.DateAdded, &createdAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}

		expense.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}

		expenses = append(expenses, &expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return expenses, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(expensesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover despesa: %w", err)
	}

	return checkAffected(result)
}

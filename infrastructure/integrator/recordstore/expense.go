package recordstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
)

const expensesTable = "expenses"

type expenseRecord struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DateAdded string  `json:"date_added"`
}

type expenseRepository struct {
	client *Client
}

func NewExpenseRepository(client *Client) repository.ExpenseRepository {
	return &expenseRepository{client: client}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	record := expenseRecord{
		Name:      expense.Name,
		Amount:    expense.Amount,
		DateAdded: expense.DateAdded,
	}

	var created []*domain.Expense
	if err := r.client.Insert(ctx, expensesTable, record, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.New("record store não devolveu a despesa criada")
	}

	return created[0], nil
}

func (r *expenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	expenses := make([]*domain.Expense, 0)
	if err := r.client.Select(ctx, expensesTable, "date_added.desc", &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	var deleted []*domain.Expense
	if err := r.client.Delete(ctx, expensesTable, id, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

package domain

import "time"

type Expense struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	DateAdded string    `json:"date_added"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateExpenseRequest struct {
	Name      string      `json:"name"`
	Amount    AmountInput `json:"amount"`
	DateAdded string      `json:"date_added"`
}

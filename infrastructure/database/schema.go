package database

import (
	"context"
	"fmt"
)

// As três coleções não têm chave estrangeira entre si.
// Datas de calendário e timestamps são gravados como texto para o mesmo schema servir aos dois dialetos.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id              TEXT PRIMARY KEY,
		item_name       TEXT NOT NULL,
		platform        TEXT NOT NULL,
		sale_date       TEXT NOT NULL,
		sale_price      DOUBLE PRECISION NOT NULL,
		platform_fee    DOUBLE PRECISION NOT NULL,
		item_cost       DOUBLE PRECISION NOT NULL DEFAULT 0,
		shipping_cost   DOUBLE PRECISION NOT NULL DEFAULT 0,
		profit          DOUBLE PRECISION NOT NULL,
		gross_total     DOUBLE PRECISION,
		actual_received DOUBLE PRECISION,
		status          TEXT NOT NULL DEFAULT 'Sold',
		converted_from  TEXT,
		created_at      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id         TEXT PRIMARY KEY,
		item_name  TEXT NOT NULL,
		item_cost  DOUBLE PRECISION NOT NULL DEFAULT 0,
		platforms  TEXT NOT NULL DEFAULT '[]',
		date_added TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		amount     DOUBLE PRECISION NOT NULL,
		date_added TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date_added ON expenses (date_added)`,
}

// EnsureSchema cria as tabelas caso ainda não existam
func EnsureSchema(ctx context.Context, conn Conn) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao criar schema: %w", err)
		}
	}
	return nil
}

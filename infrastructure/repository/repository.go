package repository

import (
	"database/sql"
	"errors"
	"time"
)

// Coleções do record store
const (
	salesTable     = "sales"
	inventoryTable = "inventory"
	expensesTable  = "expenses"
)

// timestampLayout tem largura fixa em UTC, então a ordenação textual segue a cronológica
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

var (
	ErrNotFound = errors.New("record not found")
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		// Registros gravados por outros clientes podem vir em RFC3339
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// checkAffected converte um DELETE sem linhas afetadas em ErrNotFound
func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// Dialetos SQL suportados pelo record store
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Placeholder() squirrel.PlaceholderFormat
	Ping(ctx context.Context) error
	Close() error
}

// Connection encapsula o pool de conexões e o dialeto usado para montar as queries
type Connection struct {
	*sql.DB
	Dialect string
}

func NewConnection(db *sql.DB, dialect string) *Connection {
	return &Connection{DB: db, Dialect: dialect}
}

// Placeholder devolve o formato de parâmetro do dialeto ($1 no Postgres, ? no SQLite)
func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	if c.Dialect == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

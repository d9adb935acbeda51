package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/vfg2006/resale-ledger-api/infrastructure/database"
	_ "modernc.org/sqlite"
)

// Open abre o arquivo SQLite e configura os pragmas
func Open(path string) (*database.Connection, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco sqlite: %w", err)
	}

	// Uma única conexão: o banco em memória só existe dentro dela e a ferramenta tem um usuário só
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("erro ao configurar pragma %q: %w", p, err)
		}
	}

	return database.NewConnection(db, database.DialectSQLite), nil
}

// NewTestConnection cria um banco em memória com o schema aplicado
func NewTestConnection(t *testing.T) *database.Connection {
	t.Helper()

	conn, err := Open(":memory:")
	if err != nil {
		t.Fatalf("erro ao abrir banco de teste: %v", err)
	}

	if err := database.EnsureSchema(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("erro ao criar schema de teste: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// Package store abre o record store escolhido em RECORD_STORE_DRIVER e expõe as três coleções
package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database/sqlite"
	"github.com/vfg2006/resale-ledger-api/infrastructure/integrator/recordstore"
	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/config"
)

type Store struct {
	Sales     repository.SaleRepository
	Inventory repository.InventoryRepository
	Expenses  repository.ExpenseRepository

	conn *database.Connection
}

func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	logger := logrus.WithField("driver", cfg.RecordStore.Driver)

	if cfg.RecordStore.Driver == config.DriverREST {
		client, err := recordstore.NewClient(cfg.RecordStore)
		if err != nil {
			return nil, fmt.Errorf("erro ao configurar o record store remoto: %w", err)
		}

		logger.WithField("url", cfg.RecordStore.URL).Info("Usando record store remoto")
		return &Store{
			Sales:     recordstore.NewSaleRepository(client),
			Inventory: recordstore.NewInventoryRepository(client),
			Expenses:  recordstore.NewExpenseRepository(client),
		}, nil
	}

	conn, err := openSQL(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao criar o schema do record store: %w", err)
	}

	logger.Info("Conexão com o record store estabelecida com sucesso")
	return &Store{
		Sales:     repository.NewSaleRepository(conn),
		Inventory: repository.NewInventoryRepository(conn),
		Expenses:  repository.NewExpenseRepository(conn),
		conn:      conn,
	}, nil
}

func openSQL(ctx context.Context, cfg *config.Config) (*database.Connection, error) {
	var (
		conn *database.Connection
		err  error
	)

	switch cfg.RecordStore.Driver {
	case config.DriverPostgres:
		conn, err = postgres.NewConnection(ctx, cfg.Database)
	default:
		conn, err = sqlite.Open(cfg.SQLite.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao testar conexão com o banco de dados: %w", err)
	}

	return conn, nil
}

// Close libera a conexão SQL; o backend REST não mantém conexão
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

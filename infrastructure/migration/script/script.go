package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/resale-ledger-api/infrastructure/store"
	"github.com/vfg2006/resale-ledger-api/internal/config"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/csvexport"
	"github.com/vfg2006/resale-ledger-api/pkg/log"
)

// Restaura no record store configurado um diretório gerado pelo backup de CSV.
//
//	go run ./infrastructure/migration/script --dir backups/20250601-020000
func main() {
	dir := pflag.String("dir", "", "diretório do backup a restaurar")
	dryRun := pflag.Bool("dry-run", false, "apenas lê e valida os arquivos, sem gravar")
	pflag.Parse()

	if *dir == "" {
		logrus.Fatal("Informe o diretório do backup com --dir")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	logrus.WithField("dir", *dir).Info("Iniciando restauração do backup de CSV...")

	backup, err := readBackup(*dir)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler o backup")
	}

	logrus.WithFields(logrus.Fields{
		"sales":     len(backup.Sales),
		"inventory": len(backup.Inventory),
		"expenses":  len(backup.Expenses),
	}).Info("Backup lido com sucesso")

	if *dryRun {
		return
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o record store")
	}
	defer st.Close()

	restore(ctx, st, backup)
}

// readBackup lê os arquivos sales-*.csv, inventory.csv e expenses-*.csv do diretório
func readBackup(dir string) (*domain.Snapshot, error) {
	backup := &domain.Snapshot{}

	salesFiles, err := filepath.Glob(filepath.Join(dir, csvexport.CollectionSales+"-*.csv"))
	if err != nil {
		return nil, err
	}
	for _, path := range salesFiles {
		sales, err := readFile(path, parseSales)
		if err != nil {
			return nil, err
		}
		backup.Sales = append(backup.Sales, sales...)
	}

	expenseFiles, err := filepath.Glob(filepath.Join(dir, csvexport.CollectionExpenses+"-*.csv"))
	if err != nil {
		return nil, err
	}
	for _, path := range expenseFiles {
		expenses, err := readFile(path, parseExpenses)
		if err != nil {
			return nil, err
		}
		backup.Expenses = append(backup.Expenses, expenses...)
	}

	inventoryPath := filepath.Join(dir, csvexport.FileName(csvexport.CollectionInventory, ""))
	if _, err := os.Stat(inventoryPath); err == nil {
		backup.Inventory, err = readFile(inventoryPath, parseInventory)
		if err != nil {
			return nil, err
		}
	}

	return backup, nil
}

func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// readRows devolve as linhas do CSV sem o cabeçalho, exigindo o número de colunas da exportação
func readRows(r io.Reader, columns int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

func parseSales(r io.Reader) ([]*domain.Sale, error) {
	rows, err := readRows(r, 9)
	if err != nil {
		return nil, err
	}

	sales := make([]*domain.Sale, 0, len(rows))
	for i, row := range rows {
		platform, ok := domain.ParsePlatform(row[2])
		if !ok {
			return nil, fmt.Errorf("linha %d: plataforma desconhecida %q", i+2, row[2])
		}

		amounts, err := parseMoney(i+2, row[3:8]...)
		if err != nil {
			return nil, err
		}

		sales = append(sales, &domain.Sale{
			SaleDate:     row[0],
			ItemName:     row[1],
			Platform:     platform,
			SalePrice:    amounts[0],
			PlatformFee:  amounts[1],
			ItemCost:     amounts[2],
			ShippingCost: amounts[3],
			Profit:       amounts[4],
			Status:       domain.SaleStatusSold,
		})
	}
	return sales, nil
}

// parseInventory ignora a coluna Personal, que é derivada do custo
func parseInventory(r io.Reader) ([]*domain.InventoryItem, error) {
	rows, err := readRows(r, 5)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.InventoryItem, 0, len(rows))
	for i, row := range rows {
		amounts, err := parseMoney(i+2, row[1])
		if err != nil {
			return nil, err
		}

		platforms := []domain.Platform{}
		for _, value := range strings.Split(row[2], ",") {
			if strings.TrimSpace(value) == "" {
				continue
			}
			platform, ok := domain.ParsePlatform(value)
			if !ok {
				return nil, fmt.Errorf("linha %d: plataforma desconhecida %q", i+2, value)
			}
			platforms = append(platforms, platform)
		}

		var dateAdded *string
		if row[3] != "" {
			date := row[3]
			dateAdded = &date
		}

		items = append(items, &domain.InventoryItem{
			ItemName:  row[0],
			ItemCost:  amounts[0],
			Platforms: platforms,
			DateAdded: dateAdded,
		})
	}
	return items, nil
}

func parseExpenses(r io.Reader) ([]*domain.Expense, error) {
	rows, err := readRows(r, 3)
	if err != nil {
		return nil, err
	}

	expenses := make([]*domain.Expense, 0, len(rows))
	for i, row := range rows {
		amounts, err := parseMoney(i+2, row[2])
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, &domain.Expense{
			DateAdded: row[0],
			Name:      row[1],
			Amount:    amounts[0],
		})
	}
	return expenses, nil
}

func parseMoney(line int, values ...string) ([]float64, error) {
	amounts := make([]float64, len(values))
	for i, value := range values {
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("linha %d: valor inválido %q", line, value)
		}
		amounts[i] = amount
	}
	return amounts, nil
}

// restore grava os registros um a um; falhas são contadas e a restauração segue
func restore(ctx context.Context, st *store.Store, backup *domain.Snapshot) {
	startTime := time.Now()
	successCount := 0
	errorCount := 0

	for i, sale := range backup.Sales {
		if _, err := st.Sales.Create(ctx, sale); err != nil {
			logrus.WithError(err).Errorf("ERRO ao inserir venda [%d/%d] %s", i+1, len(backup.Sales), sale.ItemName)
			errorCount++
			continue
		}
		successCount++
	}

	for i, item := range backup.Inventory {
		if _, err := st.Inventory.Create(ctx, item); err != nil {
			logrus.WithError(err).Errorf("ERRO ao inserir item de estoque [%d/%d] %s", i+1, len(backup.Inventory), item.ItemName)
			errorCount++
			continue
		}
		successCount++
	}

	for i, expense := range backup.Expenses {
		if _, err := st.Expenses.Create(ctx, expense); err != nil {
			logrus.WithError(err).Errorf("ERRO ao inserir despesa [%d/%d] %s", i+1, len(backup.Expenses), expense.Name)
			errorCount++
			continue
		}
		successCount++
	}

	logrus.Infof("Restauração concluída em %v. Sucesso: %d, Erros: %d", time.Since(startTime), successCount, errorCount)
}

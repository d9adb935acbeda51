package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database/sqlite"
	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/config"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
)

func setupBackup(t *testing.T, cfg config.Backup) (*BackupService, ledger.Ledger) {
	t.Helper()

	conn := sqlite.NewTestConnection(t)
	ledgerService := ledger.NewService(
		repository.NewSaleRepository(conn),
		repository.NewInventoryRepository(conn),
		repository.NewExpenseRepository(conn),
	)

	svc := NewBackupService(ledgerService, &config.Config{Backup: cfg})
	svc.now = func() time.Time { return time.Date(2025, time.June, 15, 2, 0, 0, 0, time.Local) }

	return svc, ledgerService
}

func TestRunBackup_WritesThreeCSVs(t *testing.T) {
	dir := t.TempDir()
	svc, ledgerService := setupBackup(t, config.Backup{Dir: dir})
	ctx := context.Background()

	_, err := ledgerService.AddSale(ctx, &domain.CreateSaleRequest{
		ItemName: `Say "cheese" camera`, Platform: "Mercari", SaleDate: "2025-05-01", SalePrice: "40",
	})
	require.NoError(t, err)
	_, err = ledgerService.AddSale(ctx, &domain.CreateSaleRequest{
		ItemName: "Old sale", Platform: "eBay", SaleDate: "2024-05-01", SalePrice: "10",
	})
	require.NoError(t, err)
	_, err = ledgerService.AddInventoryItem(ctx, &domain.CreateInventoryItemRequest{ItemName: "Lamp", ItemCost: "12", Platforms: []string{"eBay", "Depop"}})
	require.NoError(t, err)

	files, err := svc.RunBackup(ctx)
	require.NoError(t, err)
	require.Len(t, files, 3)

	backupDir := filepath.Join(dir, "20250615-020000")
	assert.Equal(t, filepath.Join(backupDir, "sales-2025.csv"), files[0])
	assert.Equal(t, filepath.Join(backupDir, "inventory.csv"), files[1])
	assert.Equal(t, filepath.Join(backupDir, "expenses-2025.csv"), files[2])

	sales, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(string(sales), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"Say ""cheese"" camera"`)
	assert.NotContains(t, string(sales), "Old sale")

	inventory, err := os.ReadFile(files[1])
	require.NoError(t, err)
	assert.Contains(t, string(inventory), `"Lamp","12.00","eBay, Depop",""`)

	expenses, err := os.ReadFile(files[2])
	require.NoError(t, err)
	assert.Equal(t, `"Date","Name","Amount"`, string(expenses))

	status := svc.GetStatus()
	assert.Equal(t, "", status["last_error"])
	assert.Equal(t, files, status["last_files"])
	assert.Equal(t, false, status["running"])
}

func TestStart_Disabled(t *testing.T) {
	svc, _ := setupBackup(t, config.Backup{Enabled: false, CronSchedule: "0 2 * * *"})

	assert.NoError(t, svc.Start(context.Background()))
}

func TestStart_InvalidCron(t *testing.T) {
	svc, _ := setupBackup(t, config.Backup{Enabled: true, CronSchedule: "not a cron"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, svc.Start(ctx))
}

func TestStart_ValidCron(t *testing.T) {
	svc, _ := setupBackup(t, config.Backup{Enabled: true, CronSchedule: "0 2 * * *", Dir: t.TempDir()})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	assert.Equal(t, true, svc.GetStatus()["backup_enabled"])
}

// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/resale-ledger-api/internal/config"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/resale-ledger-api/pkg/csvexport"
)

// backupRunTimeout limita quanto tempo uma cópia agendada pode esperar pelo record store
const backupRunTimeout = 2 * time.Minute

var backupCollections = []string{
	csvexport.CollectionSales,
	csvexport.CollectionInventory,
	csvexport.CollectionExpenses,
}

type BackupConfig struct {
	CronSchedule string
	Dir          string
	Enabled      bool
}

// BackupService grava periodicamente os CSVs do ano corrente em disco
type BackupService struct {
	scheduler *gocron.Scheduler
	ledger    ledger.Ledger
	config    BackupConfig
	now       func() time.Time

	syncMutex       sync.Mutex
	syncRunning     bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastError       string
	lastFiles       []string
}

func NewBackupService(ledgerService ledger.Ledger, cfg *config.Config) *BackupService {
	backupConfig := BackupConfig{
		CronSchedule: cfg.Backup.CronSchedule,
		Dir:          cfg.Backup.Dir,
		Enabled:      cfg.Backup.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": backupConfig.CronSchedule,
		"dir":           backupConfig.Dir,
	}).Info("Configuração do backup de CSV carregada")

	return &BackupService{
		scheduler: gocron.NewScheduler(time.Local),
		ledger:    ledgerService,
		config:    backupConfig,
		now:       time.Now,
	}
}

func (s *BackupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Backup de CSV desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de backup de CSV")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar backup de CSV: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de backup de CSV")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *BackupService) runScheduled(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, backupRunTimeout)
	defer cancel()

	if _, err := s.RunBackup(runCtx); err != nil {
		logrus.WithError(err).Error("Erro no backup de CSV")
	}
}

// RunBackup exporta as três coleções do ano corrente para um diretório com data e hora.
// Uma execução em andamento faz a chamada seguinte retornar sem fazer nada.
func (s *BackupService) RunBackup(ctx context.Context) ([]string, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Backup de CSV já em andamento, ignorando")
		return nil, nil
	}
	s.syncRunning = true
	startedAt := s.now()
	s.lastStartedAt = startedAt
	s.syncMutex.Unlock()

	files, err := s.writeBackup(ctx, startedAt)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastCompletedAt = s.now()
	s.lastFiles = files
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"files":    len(files),
		"duration": s.now().Sub(startedAt).String(),
	}).Info("Backup de CSV concluído")

	return files, nil
}

func (s *BackupService) writeBackup(ctx context.Context, startedAt time.Time) ([]string, error) {
	year := startedAt.Format("2006")

	dashboard, err := s.ledger.Dashboard(ctx, domain.DefaultFilters(year))
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar coleções para backup: %w", err)
	}

	dir := filepath.Join(s.config.Dir, startedAt.Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de backup: %w", err)
	}

	files := make([]string, 0, len(backupCollections))
	for _, collection := range backupCollections {
		content, err := csvexport.Collection(collection, dashboard)
		if err != nil {
			return files, err
		}
		path := filepath.Join(dir, csvexport.FileName(collection, year))

		if err := writeFileAtomic(path, []byte(content)); err != nil {
			return files, fmt.Errorf("erro ao gravar %s: %w", path, err)
		}
		files = append(files, path)
	}

	return files, nil
}

// writeFileAtomic grava num arquivo temporário e renomeia, para nunca deixar um CSV pela metade
func writeFileAtomic(path string, content []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// TriggerManualSync dispara um backup fora do horário agendado
func (s *BackupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Backup de CSV já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando backup manual de CSV")
	go s.runScheduled(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *BackupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	files := make([]string, len(s.lastFiles))
	copy(files, s.lastFiles)

	return map[string]any{
		"backup_enabled":         s.config.Enabled,
		"backup_cron":            s.config.CronSchedule,
		"backup_dir":             s.config.Dir,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastStartedAt,
		"last_sync_completed_at": s.lastCompletedAt,
		"last_error":             s.lastError,
		"last_files":             files,
	}
}

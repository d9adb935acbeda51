package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/resale-ledger-api/infrastructure/store"
	"github.com/vfg2006/resale-ledger-api/internal/api"
	"github.com/vfg2006/resale-ledger-api/internal/config"
	"github.com/vfg2006/resale-ledger-api/internal/scheduler"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/resale-ledger-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o record store")
	}
	defer st.Close()

	ledgerService := ledger.NewService(st.Sales, st.Inventory, st.Expenses)
	authenticator := authenticating.NewService(cfg)

	backupService := scheduler.NewBackupService(ledgerService, cfg)
	if err := backupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de backup")
	} else if cfg.Backup.Enabled {
		logrus.Info("Agendador de backup iniciado com sucesso")
	}

	server, err := api.New(cfg, ledgerService, authenticator, backupService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

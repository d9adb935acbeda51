package handler

import (
	"net/http"

	"github.com/vfg2006/resale-ledger-api/pkg/log"
)

// BackupRunner é o agendador de backup visto pelos handlers
type BackupRunner interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// RunBackup dispara o backup em segundo plano e responde na hora
func RunBackup(service BackupRunner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("Backup manual solicitado")

		service.TriggerManualSync()

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Backup iniciado",
		})
	})
}

func GetBackupStatus(service BackupRunner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.GetStatus())
	})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
)

// GetSyncStatus retorna o estado do agendador de sincronização
func GetSyncStatus(scheduler SyncScheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - GetSyncStatus")

		writeJSON(w, http.StatusOK, scheduler.GetStatus())
	})
}

// RunSync executa uma passada global de forma síncrona. Uma passada em andamento
// não é interrompida: a nova solicitação é rejeitada. A passada segue até o fim
// mesmo que o cliente desconecte.
func RunSync(scheduler SyncScheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RunSync")

		result := scheduler.TriggerManualSync(r.Context())

		status := http.StatusOK
		switch {
		case result.Success:
		case strings.Contains(result.Message, "already running"):
			status = apiErrors.StatusFor(apiErrors.ErrSyncAlreadyRunning)
		default:
			status = http.StatusInternalServerError
		}

		writeJSON(w, status, result)
	})
}

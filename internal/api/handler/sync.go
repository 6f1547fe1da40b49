package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/internal/scheduler"
	"github.com/vfg2006/channel-sync-api/internal/usecases/channeling"
	"github.com/vfg2006/channel-sync-api/pkg/apiErrors"
)

// SyncJobServices agrupa os serviços agendados acionáveis manualmente
type SyncJobServices struct {
	ChannelSyncService  *scheduler.ChannelSyncService
	ReportPollerService *scheduler.ReportPollerService
}

// RefreshAll dispara a sincronização de todas as integrações conectadas e
// responde imediatamente; o progresso fica nos logs
func RefreshAll(service *channeling.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RefreshAll")

		count, err := service.RefreshAll(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao disparar sincronização geral")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar integrações conectadas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"message":      "Sincronização disparada",
			"integrations": count,
		}); err != nil {
			logrus.WithError(err).Warn("Erro ao codificar resposta da sincronização")
		}
	})
}

// CheckReports dispara uma rodada de acompanhamento de relatórios fora do
// intervalo do poller
func CheckReports(services SyncJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CheckReports")

		if services.ReportPollerService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Poller de relatórios não disponível", nil)
			return
		}

		services.ReportPollerService.TriggerTick(r.Context())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"message": "Rodada de acompanhamento disparada",
		}); err != nil {
			logrus.WithError(err).Warn("Erro ao codificar resposta do acompanhamento")
		}
	})
}

// RunChannelSync executa manualmente o job agendado de sincronização de canais
func RunChannelSync(services SyncJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunChannelSync")

		if services.ChannelSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de canais não disponível", nil)
			return
		}

		services.ChannelSyncService.TriggerManualSync()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"message": "Sincronização de canais iniciada",
		}); err != nil {
			logrus.WithError(err).Warn("Erro ao codificar resposta da sincronização de canais")
		}
	})
}

// GetSyncStatus retorna o estado dos jobs agendados
func GetSyncStatus(services SyncJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"channel_sync": services.ChannelSyncService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

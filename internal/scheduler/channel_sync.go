package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/infrastructure/repository"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/usecases/channeling"
)

// ChannelSyncStatus é o retrato do agendador exposto para consulta
type ChannelSyncStatus struct {
	Running             bool       `json:"running"`
	LastSyncStartedAt   *time.Time `json:"last_sync_started_at,omitempty"`
	LastSyncCompletedAt *time.Time `json:"last_sync_completed_at,omitempty"`
}

// ChannelSyncService agenda a sincronização diária de todas as integrações
// conectadas. Uma execução por vez por processo; dentro de uma execução as
// integrações rodam em paralelo até o teto configurado.
type ChannelSyncService struct {
	scheduler       *gocron.Scheduler
	cfg             *config.Config
	integrationRepo repository.IntegrationRepository
	channelService  *channeling.Service

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   *time.Time
	lastSyncCompletedAt *time.Time
}

func NewChannelSyncService(
	cfg *config.Config,
	integrationRepo repository.IntegrationRepository,
	channelService *channeling.Service,
) *ChannelSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":       cfg.ChannelSync.CronSchedule,
		"lookback_days":       cfg.ChannelSync.LookbackDays,
		"max_concurrent_jobs": cfg.ChannelSync.MaxConcurrentJobs,
		"sync_enabled":        cfg.ChannelSync.Enabled,
	}).Info("Configuração do agendador de sincronização de canais carregada")

	return &ChannelSyncService{
		scheduler:       gocron.NewScheduler(time.Local),
		cfg:             cfg,
		integrationRepo: integrationRepo,
		channelService:  channelService,
	}
}

// Start agenda a sincronização periódica e encerra o agendador quando o
// contexto for cancelado
func (s *ChannelSyncService) Start(ctx context.Context) error {
	if !s.cfg.ChannelSync.Enabled {
		logrus.Info("Sincronização de canais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.ChannelSync.CronSchedule).
		Info("Iniciando agendador de sincronização de canais")

	_, err := s.scheduler.Cron(s.cfg.ChannelSync.CronSchedule).Do(func() {
		s.syncAllIntegrations()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de canais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de canais")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma execução fora do horário agendado, em segundo
// plano. Se uma execução já estiver em andamento, a nova é ignorada.
func (s *ChannelSyncService) TriggerManualSync() {
	go s.syncAllIntegrations()
}

// GetStatus informa se há uma execução em andamento e os instantes da última
func (s *ChannelSyncService) GetStatus() ChannelSyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return ChannelSyncStatus{
		Running:             s.syncRunning,
		LastSyncStartedAt:   s.lastSyncStartedAt,
		LastSyncCompletedAt: s.lastSyncCompletedAt,
	}
}

func (s *ChannelSyncService) syncAllIntegrations() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de canais já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = &startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		completedAt := time.Now()
		s.lastSyncCompletedAt = &completedAt
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de todas as integrações conectadas")

	integrations, err := s.integrationRepo.ListByStatus([]domain.IntegrationStatus{domain.IntegrationStatusConnected})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar integrações para sincronização")
		return
	}

	if len(integrations) == 0 {
		logrus.Info("Nenhuma integração conectada para sincronizar")
		return
	}

	// Semáforo limita o número de integrações sincronizando ao mesmo tempo;
	// dentro de cada integração o pipeline é estritamente sequencial
	semaphore := make(chan struct{}, s.cfg.ChannelSync.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, integration := range integrations {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(integration *domain.Integration) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			initial := integration.LastSyncedAt == nil

			logrus.WithFields(logrus.Fields{
				"integration_id": integration.ID,
				"channel_type":   integration.Type,
				"initial":        initial,
			}).Info("Sincronizando integração")

			if err := s.channelService.SyncIntegration(context.Background(), integration.ID, initial); err != nil {
				logrus.WithError(err).WithField("integration_id", integration.ID).
					Error("Erro na sincronização da integração")
			}
		}(integration)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"duration":     time.Since(startTime).String(),
		"integrations": len(integrations),
	}).Info("Sincronização de canais concluída")
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/usecases/reporting"
)

// ReportPollerService dirige o orquestrador de relatórios em intervalos
// fixos. O acompanhamento é um loop de rodadas explícitas, reagendadas depois
// que a anterior termina, nunca uma cadeia recursiva de callbacks.
type ReportPollerService struct {
	scheduler    *gocron.Scheduler
	cfg          *config.Config
	orchestrator *reporting.Orchestrator

	tickRunning bool
	tickMutex   sync.Mutex
}

func NewReportPollerService(cfg *config.Config, orchestrator *reporting.Orchestrator) *ReportPollerService {
	logrus.WithFields(logrus.Fields{
		"interval_seconds":           cfg.ReportPoller.IntervalSeconds,
		"max_processing_per_channel": cfg.ReportPoller.MaxProcessingPerChannel,
		"poller_enabled":             cfg.ReportPoller.Enabled,
	}).Info("Configuração do poller de relatórios carregada")

	return &ReportPollerService{
		scheduler:    gocron.NewScheduler(time.Local),
		cfg:          cfg,
		orchestrator: orchestrator,
	}
}

// Start agenda as rodadas de acompanhamento e encerra com o contexto
func (s *ReportPollerService) Start(ctx context.Context) error {
	if !s.cfg.ReportPoller.Enabled {
		logrus.Info("Poller de relatórios desabilitado por configuração")
		return nil
	}

	logrus.WithField("interval_seconds", s.cfg.ReportPoller.IntervalSeconds).
		Info("Iniciando poller de relatórios assíncronos")

	_, err := s.scheduler.Every(s.cfg.ReportPoller.IntervalSeconds).Seconds().Do(func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar poller de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando poller de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerTick executa uma rodada fora do intervalo, em segundo plano
func (s *ReportPollerService) TriggerTick(ctx context.Context) {
	go s.tick(context.WithoutCancel(ctx))
}

// tick roda uma rodada por vez; se a anterior ainda estiver consultando os
// canais, a nova é descartada em vez de acumular
func (s *ReportPollerService) tick(ctx context.Context) {
	s.tickMutex.Lock()
	if s.tickRunning {
		s.tickMutex.Unlock()
		return
	}
	s.tickRunning = true
	s.tickMutex.Unlock()

	defer func() {
		s.tickMutex.Lock()
		s.tickRunning = false
		s.tickMutex.Unlock()
	}()

	if err := s.orchestrator.Tick(ctx); err != nil {
		logrus.WithError(err).Error("Erro na rodada de acompanhamento de relatórios")
	}
}

package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/infrastructure/dispatch"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	"github.com/vfg2006/channel-sync-api/infrastructure/jobstore"
	"github.com/vfg2006/channel-sync-api/infrastructure/repository"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/pkg/crypto"
)

// Orchestrator acompanha os relatórios assíncronos pendentes em todos os
// canais. Várias instâncias podem rodar o mesmo loop ao mesmo tempo: o
// conjunto compartilhado é a única fonte de verdade e toda decisão de
// processamento passa por uma remoção atômica que só uma instância vence.
type Orchestrator struct {
	cfg             *config.Config
	registry        *integrator.Registry
	tracker         *jobstore.ReportJobTracker
	dispatcher      dispatch.Dispatcher
	integrationRepo repository.IntegrationRepository
	adAccountRepo   repository.AdAccountRepository
	cipher          *crypto.Cipher
}

func NewOrchestrator(
	cfg *config.Config,
	registry *integrator.Registry,
	tracker *jobstore.ReportJobTracker,
	integrationRepo repository.IntegrationRepository,
	adAccountRepo repository.AdAccountRepository,
	cipher *crypto.Cipher,
) *Orchestrator {
	return &Orchestrator{
		cfg:             cfg,
		registry:        registry,
		tracker:         tracker,
		integrationRepo: integrationRepo,
		adAccountRepo:   adAccountRepo,
		cipher:          cipher,
	}
}

// SetDispatcher injeta o destino do processamento. O dispatcher inline é
// construído sobre ProcessReportMessage deste orquestrador, então a injeção
// acontece depois da construção de ambos.
func (o *Orchestrator) SetDispatcher(dispatcher dispatch.Dispatcher) {
	o.dispatcher = dispatcher
}

func (o *Orchestrator) jobTTL() time.Duration {
	return time.Duration(o.cfg.ReportPoller.JobTTLHours) * time.Hour
}

func (o *Orchestrator) successMarkerTTL() time.Duration {
	return time.Duration(o.cfg.ReportPoller.SuccessMarkerTTLSeconds) * time.Second
}

// Track registra um job recém-disparado no conjunto do canal, em QUEUING
func (o *Orchestrator) Track(ctx context.Context, job *domain.ReportJob) error {
	return o.tracker.Add(ctx, job, o.jobTTL())
}

// Tick executa uma rodada de acompanhamento: por canal, promove jobs QUEUING
// até o teto de processamento, consulta o estado dos PROCESSING e resolve os
// terminais. Erros de um canal não interrompem os demais.
func (o *Orchestrator) Tick(ctx context.Context) error {
	var lastErr error

	for _, channelType := range domain.AllChannelTypes {
		if err := o.tickChannel(ctx, channelType); err != nil {
			lastErr = err
			logrus.WithError(err).WithField("channel_type", channelType).
				Error("Erro na rodada de acompanhamento de relatórios do canal")
		}
	}

	return lastErr
}

func (o *Orchestrator) tickChannel(ctx context.Context, channelType domain.ChannelType) error {
	jobs, err := o.tracker.List(ctx, channelType)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	adapter, err := o.registry.Get(channelType)
	if err != nil {
		return err
	}

	processing := 0
	for _, job := range jobs {
		if job.Status == domain.ReportJobStatusProcessing {
			processing++
		}
	}

	for _, job := range jobs {
		switch job.Status {
		case domain.ReportJobStatusQueuing:
			if processing >= o.cfg.ReportPoller.MaxProcessingPerChannel {
				continue
			}
			if promoted := o.promote(ctx, job); promoted {
				processing++
			}

		case domain.ReportJobStatusProcessing:
			o.poll(ctx, adapter, job)

		default:
			// Marcadores terminais (SUCCESS reinserido com TTL curto) só
			// existem para barrar reprocessamento; nada a fazer
		}
	}

	return nil
}

// promote move o job de QUEUING para PROCESSING. A remoção atômica do membro
// antigo garante que só uma instância promove; quem perde a corrida não mexe.
func (o *Orchestrator) promote(ctx context.Context, job *domain.ReportJob) bool {
	claimed, err := o.tracker.Remove(ctx, job)
	if err != nil {
		logrus.WithError(err).WithField("task_id", job.TaskID).
			Error("Erro ao promover job de relatório")
		return false
	}
	if !claimed {
		return false
	}

	promoted := *job
	promoted.Status = domain.ReportJobStatusProcessing

	if err := o.tracker.Add(ctx, &promoted, o.jobTTL()); err != nil {
		logrus.WithError(err).WithField("task_id", job.TaskID).
			Error("Erro ao registrar job promovido; o job será recriado na próxima sincronização")
		return false
	}

	return true
}

// poll consulta o canal sobre um job PROCESSING e resolve transições
// terminais. SUCCESS dispara o processamento exatamente uma vez: a instância
// que vence a remoção atômica reinsere o marcador terminal e despacha.
func (o *Orchestrator) poll(ctx context.Context, adapter integrator.Channel, job *domain.ReportJob) {
	integration, account, err := o.loadJobContext(job)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"task_id":       job.TaskID,
			"ad_account_id": job.AdAccountID,
		}).Error("Job de relatório órfão; removendo do acompanhamento")

		if _, removeErr := o.tracker.Remove(ctx, job); removeErr != nil {
			logrus.WithError(removeErr).WithField("task_id", job.TaskID).
				Error("Erro ao remover job órfão")
		}
		return
	}

	status, err := adapter.GetReportStatus(ctx, integration, account, job.TaskID)
	if err != nil {
		if integrator.IsAuthError(adapter, err) {
			logrus.WithError(err).WithField("integration_id", integration.ID).
				Warn("Erro de autenticação ao consultar relatório; marcando integração com erro")
			if updateErr := o.integrationRepo.UpdateStatus(integration.ID, domain.IntegrationStatusErrored); updateErr != nil {
				logrus.WithError(updateErr).WithField("integration_id", integration.ID).
					Error("Erro ao marcar integração como ERRORED")
			}
			return
		}

		// Falha transitória de consulta: o job permanece no conjunto e será
		// consultado de novo na próxima rodada, até vencer o TTL
		logrus.WithError(err).WithField("task_id", job.TaskID).
			Warn("Erro ao consultar estado do relatório")
		return
	}

	switch status {
	case domain.ReportJobStatusQueuing, domain.ReportJobStatusProcessing:
		return

	case domain.ReportJobStatusSuccess:
		o.resolveSuccess(ctx, job)

	case domain.ReportJobStatusFailed, domain.ReportJobStatusCanceled:
		// Sem retentativa automática: o job morre aqui e só uma nova
		// sincronização cria outro
		claimed, err := o.tracker.Remove(ctx, job)
		if err != nil {
			logrus.WithError(err).WithField("task_id", job.TaskID).
				Error("Erro ao remover job terminal")
			return
		}
		if claimed {
			logrus.WithFields(logrus.Fields{
				"task_id":       job.TaskID,
				"ad_account_id": job.AdAccountID,
				"status":        status,
			}).Warn("Relatório encerrado sem sucesso")
		}
	}
}

// resolveSuccess garante o despacho único do processamento: só a instância
// cuja remoção atômica retorna true reinsere o marcador SUCCESS (com TTL
// curto, para absorver observações repetidas) e despacha a mensagem
func (o *Orchestrator) resolveSuccess(ctx context.Context, job *domain.ReportJob) {
	claimed, err := o.tracker.Remove(ctx, job)
	if err != nil {
		logrus.WithError(err).WithField("task_id", job.TaskID).
			Error("Erro ao reivindicar job concluído")
		return
	}
	if !claimed {
		return
	}

	marker := *job
	marker.Status = domain.ReportJobStatusSuccess
	if err := o.tracker.Add(ctx, &marker, o.successMarkerTTL()); err != nil {
		logrus.WithError(err).WithField("task_id", job.TaskID).
			Error("Erro ao gravar marcador de sucesso")
	}

	message := dispatch.Message{
		ChannelType: job.ChannelType,
		AdAccountID: job.AdAccountID,
		TaskID:      job.TaskID,
		Initial:     job.Initial,
	}

	if err := o.dispatcher.Dispatch(ctx, message); err != nil {
		logrus.WithError(err).WithField("task_id", job.TaskID).
			Error("Erro ao despachar processamento de relatório")
		return
	}

	logrus.WithFields(logrus.Fields{
		"task_id":       job.TaskID,
		"ad_account_id": job.AdAccountID,
		"channel_type":  job.ChannelType,
	}).Info("Relatório concluído; processamento despachado")
}

// ProcessReportMessage é o consumidor das mensagens despachadas: baixa o
// relatório pronto e grava os insights da conta com refresh janelado
func (o *Orchestrator) ProcessReportMessage(ctx context.Context, msg dispatch.Message) error {
	adapter, err := o.registry.Get(msg.ChannelType)
	if err != nil {
		return err
	}

	job := &domain.ReportJob{
		ChannelType: msg.ChannelType,
		AdAccountID: msg.AdAccountID,
		TaskID:      msg.TaskID,
	}

	integration, account, err := o.loadJobContext(job)
	if err != nil {
		return err
	}

	if err := adapter.ProcessReport(ctx, integration, account, msg.TaskID, msg.Initial); err != nil {
		if integrator.IsAuthError(adapter, err) {
			if updateErr := o.integrationRepo.UpdateStatus(integration.ID, domain.IntegrationStatusErrored); updateErr != nil {
				logrus.WithError(updateErr).WithField("integration_id", integration.ID).
					Error("Erro ao marcar integração como ERRORED")
			}
		}
		return errors.Wrapf(err, "erro no processamento do relatório %s", msg.TaskID)
	}

	return nil
}

// loadJobContext resolve a conta e a integração de um job, com os tokens já
// abertos para uso nas chamadas ao canal
func (o *Orchestrator) loadJobContext(job *domain.ReportJob) (*domain.Integration, *domain.AdAccount, error) {
	account, err := o.adAccountRepo.GetByID(job.AdAccountID)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, errors.Errorf("conta %s do job não existe mais", job.AdAccountID)
	}

	integration, err := o.integrationRepo.GetByID(account.IntegrationID)
	if err != nil {
		return nil, nil, err
	}
	if integration == nil {
		return nil, nil, errors.Errorf("integração %s da conta não existe mais", account.IntegrationID)
	}

	if err := o.decryptTokens(integration); err != nil {
		return nil, nil, err
	}

	return integration, account, nil
}

func (o *Orchestrator) decryptTokens(integration *domain.Integration) error {
	accessToken, err := o.cipher.Decrypt(integration.AccessToken)
	if err != nil {
		return errors.Wrap(err, "erro ao descriptografar access token")
	}
	integration.AccessToken = accessToken

	if integration.RefreshToken != nil {
		refreshToken, err := o.cipher.Decrypt(*integration.RefreshToken)
		if err != nil {
			return errors.Wrap(err, "erro ao descriptografar refresh token")
		}
		integration.RefreshToken = &refreshToken
	}

	return nil
}

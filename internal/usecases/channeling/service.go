package channeling

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	"github.com/vfg2006/channel-sync-api/infrastructure/jobstore"
	"github.com/vfg2006/channel-sync-api/infrastructure/repository"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/pkg/crypto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// refreshMargin é a antecedência com que um access token prestes a vencer é
// renovado, para que nenhuma sincronização comece com um token no fio
const refreshMargin = 1 * time.Hour

// previewCacheTTL limita quantas vezes o canal é consultado para a mesma
// pré-visualização; o iframe muda raramente
const previewCacheTTL = 1 * time.Hour

// ReportTracker registra jobs de relatório recém-criados para acompanhamento
// pelo orquestrador
type ReportTracker interface {
	Track(ctx context.Context, job *domain.ReportJob) error
}

// Service concentra o ciclo de vida das integrações: conexão via OAuth,
// desconexão, webhooks de desautorização, classificação de erros de token e a
// sincronização completa de uma integração
type Service struct {
	cfg             *config.Config
	integrationRepo repository.IntegrationRepository
	adAccountRepo   repository.AdAccountRepository
	adRepo          repository.AdRepository
	registry        *integrator.Registry
	cipher          *crypto.Cipher
	store           jobstore.Store
	tracker         ReportTracker
}

func NewService(
	cfg *config.Config,
	integrationRepo repository.IntegrationRepository,
	adAccountRepo repository.AdAccountRepository,
	adRepo repository.AdRepository,
	registry *integrator.Registry,
	cipher *crypto.Cipher,
	store jobstore.Store,
	tracker ReportTracker,
) *Service {
	return &Service{
		cfg:             cfg,
		integrationRepo: integrationRepo,
		adAccountRepo:   adAccountRepo,
		adRepo:          adRepo,
		registry:        registry,
		cipher:          cipher,
		store:           store,
		tracker:         tracker,
	}
}

// GenerateAuthURL monta a URL de autorização do canal com o state informado
func (s *Service) GenerateAuthURL(channelType domain.ChannelType, state string) (string, error) {
	adapter, err := s.registry.Get(channelType)
	if err != nil {
		return "", err
	}

	return adapter.GenerateAuthURL(state), nil
}

// Connect conclui o callback OAuth: troca o code por tokens, resolve o id
// externo do usuário, criptografa os tokens e persiste a integração como
// CONNECTED. A primeira sincronização é disparada em segundo plano.
func (s *Service) Connect(ctx context.Context, organizationID string, channelType domain.ChannelType, code string) (*domain.Integration, error) {
	adapter, err := s.registry.Get(channelType)
	if err != nil {
		return nil, err
	}

	tokens, err := adapter.ExchangeCodeForTokens(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "erro na troca do authorization code")
	}

	externalID, err := adapter.GetUserID(ctx, tokens)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao resolver o usuário do canal")
	}

	encrypted, err := s.encryptTokens(tokens)
	if err != nil {
		return nil, err
	}

	integration := &domain.Integration{
		OrganizationID:        organizationID,
		Type:                  channelType,
		Status:                domain.IntegrationStatusConnected,
		AccessToken:           encrypted.AccessToken,
		RefreshToken:          encrypted.RefreshToken,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
		ExternalID:            externalID,
	}

	if err := s.integrationRepo.Save(integration); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"integration_id":  integration.ID,
		"organization_id": organizationID,
		"channel_type":    channelType,
	}).Info("Integração conectada")

	go s.syncInBackground(context.WithoutCancel(ctx), integration.ID, true)

	return integration, nil
}

// Disconnect revoga o acesso no canal (melhor esforço) e marca a integração
// como REVOKED. A integração nunca é removida fisicamente.
func (s *Service) Disconnect(ctx context.Context, organizationID string, channelType domain.ChannelType) error {
	integration, err := s.integrationRepo.GetByOrgAndType(organizationID, channelType)
	if err != nil {
		return err
	}
	if integration == nil {
		return domain.ErrIntegrationNotFound
	}

	adapter, err := s.registry.Get(channelType)
	if err != nil {
		return err
	}

	if err := s.decryptIntegrationTokens(integration); err == nil {
		if err := adapter.DeAuthorize(ctx, integration); err != nil {
			logrus.WithError(err).WithField("integration_id", integration.ID).
				Warn("Falha na revogação remota; a integração será marcada como revogada mesmo assim")
		}
	}

	return s.integrationRepo.UpdateStatus(integration.ID, domain.IntegrationStatusRevoked)
}

// HandleSignOut trata o webhook de desautorização iniciado pelo canal. A
// assinatura do payload é verificada pelo adapter; assinatura inválida é
// rejeitada antes de qualquer efeito.
func (s *Service) HandleSignOut(_ context.Context, channelType domain.ChannelType, payload string) error {
	adapter, err := s.registry.Get(channelType)
	if err != nil {
		return err
	}

	externalID, err := adapter.SignOutCallback(payload)
	if err != nil {
		return err
	}

	integration, err := s.integrationRepo.GetByExternalID(channelType, externalID)
	if err != nil {
		return err
	}
	if integration == nil {
		return domain.ErrIntegrationNotFound
	}

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"channel_type":   channelType,
	}).Info("Desautorização recebida do canal; revogando integração")

	return s.integrationRepo.UpdateStatus(integration.ID, domain.IntegrationStatusRevoked)
}

// GetAdPreview resolve o iframe de pré-visualização de um anúncio junto ao
// canal, com cache curto para não repetir a chamada a cada render
func (s *Service) GetAdPreview(ctx context.Context, adID string, placement domain.PreviewPlacement) (*domain.AdPreview, error) {
	ad, err := s.adRepo.GetByID(adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, domain.ErrAdNotFound
	}

	account, err := s.adAccountRepo.GetByID(ad.AdAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrIntegrationNotFound
	}

	integration, err := s.integrationRepo.GetByID(account.IntegrationID)
	if err != nil {
		return nil, err
	}
	if integration == nil {
		return nil, domain.ErrIntegrationNotFound
	}

	adapter, err := s.registry.Get(integration.Type)
	if err != nil {
		return nil, err
	}

	cacheKey := previewCacheKey(adID, placement)
	if cached, found, err := s.store.Get(ctx, cacheKey); err != nil {
		logrus.WithError(err).WithField("ad_id", adID).
			Warn("Erro ao consultar o cache de pré-visualização")
	} else if found {
		preview := &domain.AdPreview{}
		if err := json.Unmarshal([]byte(cached), preview); err == nil {
			return preview, nil
		}
	}

	if err := s.decryptIntegrationTokens(integration); err != nil {
		return nil, errors.Wrapf(err, "token da integração %s ilegível", integration.ID)
	}

	preview, err := adapter.GetAdPreview(ctx, integration, ad.ExternalID, placement)
	if err != nil {
		s.ClassifyChannelError(integration.ID, integration.Type, err)
		return nil, err
	}

	if encoded, err := json.Marshal(preview); err == nil {
		if err := s.store.Set(ctx, cacheKey, string(encoded), previewCacheTTL); err != nil {
			logrus.WithError(err).WithField("ad_id", adID).
				Warn("Erro ao gravar o cache de pré-visualização")
		}
	}

	return preview, nil
}

func previewCacheKey(adID string, placement domain.PreviewPlacement) string {
	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}

	return fmt.Sprintf("ad-preview:%s:%s:%s:%s",
		adID, deref(placement.Publisher), deref(placement.Device), deref(placement.Position))
}

// ClassifyChannelError decide se um erro vindo do canal é fatal para a
// integração. Mensagens da tabela de erros de autenticação do adapter marcam a
// integração como ERRORED; qualquer outro erro é apenas logado, sem mudar o
// estado, por ser potencialmente transitório.
func (s *Service) ClassifyChannelError(integrationID string, channelType domain.ChannelType, channelErr error) {
	if channelErr == nil {
		return
	}

	adapter, err := s.registry.Get(channelType)
	if err != nil {
		logrus.WithError(err).Error("Canal desconhecido na classificação de erro")
		return
	}

	if integrator.IsAuthError(adapter, channelErr) {
		logrus.WithFields(logrus.Fields{
			"integration_id": integrationID,
			"channel_type":   channelType,
		}).WithError(channelErr).Warn("Erro de autenticação do canal; marcando integração com erro")

		if err := s.integrationRepo.UpdateStatus(integrationID, domain.IntegrationStatusErrored); err != nil {
			logrus.WithError(err).WithField("integration_id", integrationID).
				Error("Erro ao marcar integração como ERRORED")
		}
		return
	}

	logrus.WithError(channelErr).WithFields(logrus.Fields{
		"integration_id": integrationID,
		"channel_type":   channelType,
	}).Error("Erro do canal sem classificação de autenticação")
}

// SyncIntegration executa a sincronização completa de uma integração, na ordem
// contas -> hierarquia/insights -> relatórios assíncronos. Passos dentro de uma
// mesma conta são estritamente sequenciais; falhas em uma conta não impedem as
// demais.
func (s *Service) SyncIntegration(ctx context.Context, integrationID string, initial bool) error {
	integration, err := s.integrationRepo.GetByID(integrationID)
	if err != nil {
		return err
	}
	if integration == nil {
		return domain.ErrIntegrationNotFound
	}

	adapter, err := s.registry.Get(integration.Type)
	if err != nil {
		return err
	}

	if err := s.decryptIntegrationTokens(integration); err != nil {
		// Token ilegível é um estado fatal da integração, não uma falha da
		// sincronização: marca com erro em vez de propagar a falha de
		// descriptografia
		if updateErr := s.integrationRepo.UpdateStatus(integration.ID, domain.IntegrationStatusErrored); updateErr != nil {
			logrus.WithError(updateErr).WithField("integration_id", integration.ID).
				Error("Erro ao marcar integração com token corrompido")
		}
		return errors.Wrapf(err, "token da integração %s ilegível", integration.ID)
	}

	if err := s.ensureFreshTokens(ctx, adapter, integration); err != nil {
		return err
	}

	if _, err := adapter.SaveAdAccounts(ctx, integration); err != nil {
		s.ClassifyChannelError(integration.ID, integration.Type, err)
		return err
	}

	if err := adapter.GetChannelData(ctx, integration, initial); err != nil {
		s.ClassifyChannelError(integration.ID, integration.Type, err)
		return err
	}

	if err := s.runReports(ctx, adapter, integration, initial); err != nil {
		s.ClassifyChannelError(integration.ID, integration.Type, err)
		return err
	}

	return s.integrationRepo.UpdateLastSyncedAt(integration.ID, time.Now())
}

// runReports dispara um relatório assíncrono por conta nos canais que usam
// esse fluxo e registra cada job no orquestrador. Falhas de uma conta não
// bloqueiam as demais.
func (s *Service) runReports(ctx context.Context, adapter integrator.Channel, integration *domain.Integration, initial bool) error {
	accounts, err := s.adAccountRepo.ListByIntegration(integration.ID)
	if err != nil {
		return err
	}

	filters := domain.NewInsightFilters(initial, s.cfg.ChannelSync.LookbackDays)

	failures := 0
	for _, account := range accounts {
		taskID, err := adapter.RunAdInsightReport(ctx, integration, account, filters)
		if err != nil {
			if errors.Is(err, domain.ErrReportsNotSupported) {
				// Canal de sincronização inline; nada a acompanhar
				return nil
			}

			failures++
			logrus.WithError(err).WithFields(logrus.Fields{
				"integration_id": integration.ID,
				"ad_account_id":  account.ID,
			}).Error("Erro ao disparar relatório da conta")
			continue
		}

		job := &domain.ReportJob{
			ChannelType: integration.Type,
			AdAccountID: account.ID,
			TaskID:      taskID,
			Status:      domain.ReportJobStatusQueuing,
			Initial:     initial,
		}

		if err := s.tracker.Track(ctx, job); err != nil {
			failures++
			logrus.WithError(err).WithFields(logrus.Fields{
				"integration_id": integration.ID,
				"ad_account_id":  account.ID,
				"task_id":        taskID,
			}).Error("Erro ao registrar job de relatório")
		}
	}

	if failures > 0 && failures == len(accounts) {
		return errors.Errorf("todas as %d contas falharam ao disparar relatórios", failures)
	}

	return nil
}

// RefreshAll dispara a sincronização de todas as integrações CONNECTED em
// modo fire-and-forget e retorna imediatamente
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	integrations, err := s.integrationRepo.ListByStatus([]domain.IntegrationStatus{domain.IntegrationStatusConnected})
	if err != nil {
		return 0, err
	}

	for _, integration := range integrations {
		initial := integration.LastSyncedAt == nil
		go s.syncInBackground(context.WithoutCancel(ctx), integration.ID, initial)
	}

	return len(integrations), nil
}

// syncInBackground é a borda fire-and-forget: panics e erros param aqui, nos
// logs, e nunca derrubam o processo
func (s *Service) syncInBackground(ctx context.Context, integrationID string, initial bool) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"integration_id": integrationID,
				"panic":          r,
			}).Error("Panic na sincronização em segundo plano")
		}
	}()

	if err := s.SyncIntegration(ctx, integrationID, initial); err != nil {
		logrus.WithError(err).WithField("integration_id", integrationID).
			Error("Erro na sincronização em segundo plano")
	}
}

// ensureFreshTokens renova o access token quando ele está vencido ou dentro da
// margem de renovação. Canais sem refresh token não têm o que renovar: se o
// token já venceu a integração vira EXPIRED, senão apenas sinaliza EXPIRING.
func (s *Service) ensureFreshTokens(ctx context.Context, adapter integrator.Channel, integration *domain.Integration) error {
	expiresAt := integration.AccessTokenExpiresAt
	if expiresAt == nil || time.Until(*expiresAt) > refreshMargin {
		return nil
	}

	expired := time.Now().After(*expiresAt)

	if integration.RefreshToken == nil {
		return s.markTokenAging(integration, expired)
	}

	tokens, err := adapter.RefreshTokens(ctx, *integration.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenRefreshNotSupported) {
			return s.markTokenAging(integration, expired)
		}

		s.ClassifyChannelError(integration.ID, integration.Type, err)
		return errors.Wrap(err, "erro na renovação do token")
	}

	// Canais que não devolvem um novo refresh token mantêm o atual
	if tokens.RefreshToken == nil {
		tokens.RefreshToken = integration.RefreshToken
		tokens.RefreshTokenExpiresAt = integration.RefreshTokenExpiresAt
	}

	encrypted, err := s.encryptTokens(tokens)
	if err != nil {
		return err
	}

	if err := s.integrationRepo.UpdateTokens(integration.ID, encrypted); err != nil {
		return err
	}

	// A sincronização em curso segue com os tokens recém-emitidos, em claro
	integration.AccessToken = tokens.AccessToken
	integration.RefreshToken = tokens.RefreshToken
	integration.AccessTokenExpiresAt = tokens.AccessTokenExpiresAt
	integration.RefreshTokenExpiresAt = tokens.RefreshTokenExpiresAt

	logrus.WithField("integration_id", integration.ID).Info("Tokens da integração renovados")

	return nil
}

func (s *Service) markTokenAging(integration *domain.Integration, expired bool) error {
	status := domain.IntegrationStatusExpiring
	if expired {
		status = domain.IntegrationStatusExpired
	}

	if err := s.integrationRepo.UpdateStatus(integration.ID, status); err != nil {
		return err
	}

	if expired {
		return errors.Errorf("token da integração %s expirado e sem renovação possível", integration.ID)
	}

	logrus.WithField("integration_id", integration.ID).
		Warn("Token da integração próximo do vencimento e sem renovação possível")

	return nil
}

// encryptTokens criptografa access e refresh tokens para persistência. Os
// tokens nunca tocam o banco em claro.
func (s *Service) encryptTokens(tokens *domain.OAuthTokens) (*domain.OAuthTokens, error) {
	encryptedAccess, err := s.cipher.Encrypt(tokens.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criptografar access token")
	}

	encrypted := &domain.OAuthTokens{
		AccessToken:           encryptedAccess,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
	}

	if tokens.RefreshToken != nil {
		encryptedRefresh, err := s.cipher.Encrypt(*tokens.RefreshToken)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao criptografar refresh token")
		}
		encrypted.RefreshToken = &encryptedRefresh
	}

	return encrypted, nil
}

// decryptIntegrationTokens substitui, em memória, os tokens criptografados da
// integração pelos valores em claro usados nas chamadas ao canal
func (s *Service) decryptIntegrationTokens(integration *domain.Integration) error {
	accessToken, err := s.cipher.Decrypt(integration.AccessToken)
	if err != nil {
		return errors.Wrap(err, "erro ao descriptografar access token")
	}
	integration.AccessToken = accessToken

	if integration.RefreshToken != nil {
		refreshToken, err := s.cipher.Decrypt(*integration.RefreshToken)
		if err != nil {
			return errors.Wrap(err, "erro ao descriptografar refresh token")
		}
		integration.RefreshToken = &refreshToken
	}

	return nil
}

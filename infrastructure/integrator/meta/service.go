package meta

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/reconciler"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
	"github.com/vfg2006/channel-sync-api/pkg/crypto"
	"github.com/vfg2006/channel-sync-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// authErrorMessages são as mensagens conhecidas de token morto da Graph API.
// Qualquer erro contendo uma delas transiciona a integração para ERRORED.
var authErrorMessages = []string{
	"Error validating access token: The session has been invalidated because the user changed their password or Facebook has changed the session for security reasons.",
	"Error validating access token: The user has not authorized application",
	"Error validating access token: Session has expired",
	"The access token could not be decrypted",
}

// MetaIntegrator sincroniza a Graph API do Meta. O canal não usa relatórios
// assíncronos: os insights são buscados inline durante o GetChannelData.
type MetaIntegrator struct {
	cfg           *config.Config
	client        metaclient.Client
	reconciler    *reconciler.Reconciler
	insightWriter *reconciler.InsightWriter
}

func New(cfg *config.Config, client metaclient.Client, rec *reconciler.Reconciler, insightWriter *reconciler.InsightWriter) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:           cfg,
		client:        client,
		reconciler:    rec,
		insightWriter: insightWriter,
	}
}

func (s *MetaIntegrator) Type() domain.ChannelType {
	return domain.ChannelTypeMeta
}

func (s *MetaIntegrator) GenerateAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.cfg.Meta.AppID)
	params.Set("redirect_uri", s.cfg.Meta.RedirectURL)
	params.Set("state", state)
	params.Set("scope", "ads_read,business_management")

	return fmt.Sprintf("https://www.facebook.com/%s/dialog/oauth?%s", s.cfg.Meta.Version, params.Encode())
}

// ExchangeCodeForTokens troca o code pelo token de curta duração, estende para
// longa duração e deriva a expiração via debug de token quando a troca não a
// informa
func (s *MetaIntegrator) ExchangeCodeForTokens(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	shortLived, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	longLived, err := s.client.ExchangeLongLivedToken(ctx, shortLived.AccessToken)
	if err != nil {
		return nil, err
	}

	tokens := &domain.OAuthTokens{AccessToken: longLived.AccessToken}

	if longLived.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(longLived.ExpiresIn) * time.Second)
		tokens.AccessTokenExpiresAt = &expiresAt
		return tokens, nil
	}

	debug, err := s.client.DebugToken(ctx, longLived.AccessToken)
	if err != nil {
		logrus.WithError(err).Warn("Meta: debug de token falhou; integração fica sem expiração conhecida")
		return tokens, nil
	}

	if debug.ExpiresAt > 0 {
		expiresAt := time.Unix(debug.ExpiresAt, 0)
		tokens.AccessTokenExpiresAt = &expiresAt
	}

	return tokens, nil
}

func (s *MetaIntegrator) RefreshTokens(_ context.Context, _ string) (*domain.OAuthTokens, error) {
	// O Meta não emite refresh token; o token de longa duração é renovado
	// apenas por nova autorização do usuário
	return nil, domain.ErrTokenRefreshNotSupported
}

func (s *MetaIntegrator) GetUserID(ctx context.Context, tokens *domain.OAuthTokens) (string, error) {
	return s.client.GetMe(ctx, tokens.AccessToken)
}

func (s *MetaIntegrator) DeAuthorize(ctx context.Context, integration *domain.Integration) error {
	return s.client.RevokePermissions(ctx, integration.ExternalID, integration.AccessToken)
}

func (s *MetaIntegrator) SaveAdAccounts(ctx context.Context, integration *domain.Integration) ([]*domain.AdAccount, error) {
	metaAccounts, err := pagination.Walk(ctx, adAccountsPageSchema,
		s.client.AdAccountsFetch(integration.AccessToken), mapAdAccountsPage)
	if err != nil {
		return nil, errors.Wrap(err, "Meta: erro ao buscar contas de anúncios")
	}

	accounts := make([]*domain.AdAccount, 0, len(metaAccounts))
	for _, metaAccount := range metaAccounts {
		accounts = append(accounts, &domain.AdAccount{
			IntegrationID: integration.ID,
			ChannelType:   domain.ChannelTypeMeta,
			ExternalID:    metaAccount.AccountID,
			Name:          metaAccount.Name,
			Currency:      metaAccount.Currency,
		})
	}

	return s.reconciler.SaveAccounts(accounts)
}

// GetChannelData sincroniza campanhas, conjuntos, anúncios, criativos e
// insights de todas as contas da integração. Uma conta que falha não impede a
// sincronização das demais.
func (s *MetaIntegrator) GetChannelData(ctx context.Context, integration *domain.Integration, initial bool) error {
	accounts, err := s.reconciler.ListAccounts(integration.ID)
	if err != nil {
		return err
	}

	filters := domain.NewInsightFilters(initial, s.cfg.ChannelSync.LookbackDays)

	failures := 0
	for _, account := range accounts {
		if err := s.syncAccount(ctx, integration, account, filters); err != nil {
			failures++
			logrus.WithError(err).WithFields(logrus.Fields{
				"integration_id": integration.ID,
				"ad_account_id":  account.ID,
				"external_id":    account.ExternalID,
			}).Error("Meta: falha na sincronização da conta")
		}
	}

	if failures > 0 && failures == len(accounts) {
		return errors.Errorf("Meta: todas as %d contas da integração falharam na sincronização", failures)
	}

	return nil
}

func (s *MetaIntegrator) syncAccount(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, filters domain.InsightFilters) error {
	token := integration.AccessToken

	metaCampaigns, err := pagination.Walk(ctx, campaignsPageSchema,
		s.client.CampaignsFetch(token, account.ExternalID), mapCampaignsPage)
	if err != nil {
		return errors.Wrap(err, "erro ao buscar campanhas")
	}

	campaigns := make([]*domain.Campaign, 0, len(metaCampaigns))
	for _, metaCampaign := range metaCampaigns {
		campaign := &domain.Campaign{
			AdAccountID: account.ID,
			ExternalID:  metaCampaign.ID,
			Name:        metaCampaign.Name,
		}
		if metaCampaign.Objective != "" {
			campaign.Objective = &metaCampaign.Objective
		}
		if metaCampaign.Status != "" {
			campaign.Status = &metaCampaign.Status
		}
		campaigns = append(campaigns, campaign)
	}

	campaignIDs, err := s.reconciler.SaveCampaigns(campaigns)
	if err != nil {
		return err
	}

	metaAdSets, err := pagination.Walk(ctx, adSetsPageSchema,
		s.client.AdSetsFetch(token, account.ExternalID), mapAdSetsPage)
	if err != nil {
		return errors.Wrap(err, "erro ao buscar conjuntos de anúncios")
	}

	adSets := make([]*domain.AdSet, 0, len(metaAdSets))
	for _, metaAdSet := range metaAdSets {
		campaignID, ok := campaignIDs[metaAdSet.CampaignID]
		if !ok {
			return errors.Errorf("conjunto %s referencia campanha desconhecida %s", metaAdSet.ID, metaAdSet.CampaignID)
		}
		adSets = append(adSets, &domain.AdSet{
			AdAccountID: account.ID,
			CampaignID:  campaignID,
			ExternalID:  metaAdSet.ID,
			Name:        metaAdSet.Name,
		})
	}

	adSetIDs, err := s.reconciler.SaveAdSets(adSets)
	if err != nil {
		return err
	}

	metaAds, err := pagination.Walk(ctx, adsPageSchema,
		s.client.AdsFetch(token, account.ExternalID), mapAdsPage)
	if err != nil {
		return errors.Wrap(err, "erro ao buscar anúncios")
	}

	ads := make([]*domain.Ad, 0, len(metaAds))
	for _, metaAd := range metaAds {
		adSetID, ok := adSetIDs[metaAd.AdSetID]
		if !ok {
			return errors.Errorf("anúncio %s referencia conjunto desconhecido %s", metaAd.ID, metaAd.AdSetID)
		}
		ads = append(ads, &domain.Ad{
			AdAccountID: account.ID,
			AdSetID:     adSetID,
			ExternalID:  metaAd.ID,
			Name:        metaAd.Name,
		})
	}

	adIDs, err := s.reconciler.SaveAds(ads)
	if err != nil {
		return err
	}

	creatives := make([]*domain.Creative, 0)
	for _, metaAd := range metaAds {
		if metaAd.Creative == nil {
			continue
		}

		adID, ok := adIDs[metaAd.ID]
		if !ok {
			return errors.Errorf("criativo %s referencia anúncio desconhecido %s", metaAd.Creative.ID, metaAd.ID)
		}

		creative := &domain.Creative{
			AdID:       adID,
			ExternalID: metaAd.Creative.ID,
		}
		if metaAd.Creative.Name != "" {
			creative.Name = &metaAd.Creative.Name
		}
		if metaAd.Creative.ThumbnailURL != "" {
			creative.ThumbnailURL = &metaAd.Creative.ThumbnailURL
		}
		creatives = append(creatives, creative)
	}

	if _, err := s.reconciler.SaveCreatives(creatives); err != nil {
		return err
	}

	return s.syncInsights(ctx, token, account, filters, adIDs)
}

// syncInsights aplica o refresh janelado: limpa a janela da conta e grava as
// páginas de insights incrementalmente conforme chegam
func (s *MetaIntegrator) syncInsights(ctx context.Context, token string, account *domain.AdAccount, filters domain.InsightFilters, adIDs map[string]string) error {
	if err := s.insightWriter.ClearWindow(account.ID, filters); err != nil {
		return err
	}

	total, err := pagination.WalkPages(ctx, insightsPageSchema,
		s.client.InsightsFetch(token, account.ExternalID, filters), mapInsightsPage,
		func(_ context.Context, rows []metadomain.InsightRow) error {
			insights, err := s.buildInsights(account, rows)
			if err != nil {
				return err
			}

			if err := s.reconciler.ResolveAdIDs(insights, adIDs); err != nil {
				return err
			}

			return s.insightWriter.Write(insights)
		})
	if err != nil {
		return errors.Wrap(err, "erro ao sincronizar insights")
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": account.ID,
		"insights":      total,
		"since":         filters.Since.Format(time.DateOnly),
		"until":         filters.Until.Format(time.DateOnly),
	}).Info("Meta: insights da conta sincronizados")

	return nil
}

func (s *MetaIntegrator) buildInsights(account *domain.AdAccount, rows []metadomain.InsightRow) ([]*domain.Insight, error) {
	insights := make([]*domain.Insight, 0, len(rows))

	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row.DateStart)
		if err != nil {
			return nil, errors.Wrapf(err, "data inválida no insight do anúncio %s", row.AdID)
		}

		spendCents, ok := utils.CentsFromDecimalString(row.Spend)
		if !ok && row.Spend != "" {
			logrus.WithFields(logrus.Fields{
				"ad_external_id": row.AdID,
				"spend_value":    row.Spend,
			}).Warn("Meta: valor de gasto não numérico no insight")
		}

		insight := &domain.Insight{
			AdAccountID: account.ID,
			AdID:        row.AdID,
			Date:        date,
			Device:      row.DevicePlatform,
			Publisher:   row.PublisherPlatform,
			Position:    row.PlatformPosition,
			Impressions: parseCount(row.Impressions),
			SpendCents:  spendCents,
		}

		if row.Clicks != "" {
			clicks := parseCount(row.Clicks)
			insight.Clicks = &clicks
		}

		insights = append(insights, insight)
	}

	return insights, nil
}

func parseCount(value string) int64 {
	if value == "" {
		return 0
	}

	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithField("value", value).Warn("Meta: valor de contagem não numérico no insight")
		return 0
	}

	return count
}

func (s *MetaIntegrator) GetAdPreview(ctx context.Context, integration *domain.Integration, adExternalID string, placement domain.PreviewPlacement) (*domain.AdPreview, error) {
	format, width, height := resolveFormat(placement)

	iframe, err := s.client.GetAdPreview(ctx, integration.AccessToken, adExternalID, format)
	if err != nil {
		return nil, err
	}

	return &domain.AdPreview{
		IFrame: iframe,
		Width:  width,
		Height: height,
	}, nil
}

func (s *MetaIntegrator) RunAdInsightReport(_ context.Context, _ *domain.Integration, _ *domain.AdAccount, _ domain.InsightFilters) (string, error) {
	return "", domain.ErrReportsNotSupported
}

func (s *MetaIntegrator) GetReportStatus(_ context.Context, _ *domain.Integration, _ *domain.AdAccount, _ string) (domain.ReportJobStatus, error) {
	return "", domain.ErrReportsNotSupported
}

func (s *MetaIntegrator) ProcessReport(_ context.Context, _ *domain.Integration, _ *domain.AdAccount, _ string, _ bool) error {
	return domain.ErrReportsNotSupported
}

// SignOutCallback valida o signed request do webhook de desautorização e
// retorna o id externo do usuário que revogou o acesso
func (s *MetaIntegrator) SignOutCallback(payload string) (string, error) {
	signedRequest, err := crypto.ParseSignedRequest(payload, s.cfg.Meta.AppSecret)
	if err != nil {
		return "", err
	}

	return signedRequest.UserID, nil
}

func (s *MetaIntegrator) AuthErrorMessages() []string {
	return authErrorMessages
}

func mapAdAccountsPage(raw []byte) ([]metadomain.AdAccount, error) {
	page := metadomain.AdAccountsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapCampaignsPage(raw []byte) ([]metadomain.Campaign, error) {
	page := metadomain.CampaignsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapAdSetsPage(raw []byte) ([]metadomain.AdSet, error) {
	page := metadomain.AdSetsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapAdsPage(raw []byte) ([]metadomain.Ad, error) {
	page := metadomain.AdsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapInsightsPage(raw []byte) ([]metadomain.InsightRow, error) {
	page := metadomain.InsightsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

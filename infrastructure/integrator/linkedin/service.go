package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	lidomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/linkedin/linkedinclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/reconciler"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
	"github.com/vfg2006/channel-sync-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var authErrorMessages = []string{
	"The token used in the request has been revoked by the user",
	"The token used in the request has expired",
	"Empty oauth2 access token",
	"Not enough permissions to access: partner API",
}

// LinkedInIntegrator sincroniza a API de marketing do LinkedIn. Os insights
// usam o fluxo de relatório assíncrono: export criado por RunAdInsightReport,
// acompanhado por GetReportStatus e baixado em ProcessReport. A hierarquia
// local mapeia campaign group -> campanha, campaign -> conjunto e
// creative -> anúncio.
type LinkedInIntegrator struct {
	cfg           *config.Config
	client        linkedinclient.Client
	reconciler    *reconciler.Reconciler
	insightWriter *reconciler.InsightWriter
}

func New(cfg *config.Config, client linkedinclient.Client, rec *reconciler.Reconciler, insightWriter *reconciler.InsightWriter) *LinkedInIntegrator {
	return &LinkedInIntegrator{
		cfg:           cfg,
		client:        client,
		reconciler:    rec,
		insightWriter: insightWriter,
	}
}

func (s *LinkedInIntegrator) Type() domain.ChannelType {
	return domain.ChannelTypeLinkedIn
}

func (s *LinkedInIntegrator) GenerateAuthURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.cfg.LinkedIn.ClientID)
	params.Set("redirect_uri", s.cfg.LinkedIn.RedirectURL)
	params.Set("state", state)
	params.Set("scope", "r_ads,r_ads_reporting,openid,profile")

	return fmt.Sprintf("%s/authorization?%s", s.cfg.LinkedIn.AuthURL, params.Encode())
}

func (s *LinkedInIntegrator) ExchangeCodeForTokens(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	response, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return tokensFromResponse(response), nil
}

func (s *LinkedInIntegrator) RefreshTokens(ctx context.Context, refreshToken string) (*domain.OAuthTokens, error) {
	response, err := s.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	return tokensFromResponse(response), nil
}

func tokensFromResponse(response *lidomain.TokenResponse) *domain.OAuthTokens {
	tokens := &domain.OAuthTokens{AccessToken: response.AccessToken}

	if response.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(response.ExpiresIn) * time.Second)
		tokens.AccessTokenExpiresAt = &expiresAt
	}

	if response.RefreshToken != "" {
		refreshToken := response.RefreshToken
		tokens.RefreshToken = &refreshToken

		if response.RefreshTokenExpiresIn > 0 {
			refreshExpiresAt := time.Now().Add(time.Duration(response.RefreshTokenExpiresIn) * time.Second)
			tokens.RefreshTokenExpiresAt = &refreshExpiresAt
		}
	}

	return tokens
}

func (s *LinkedInIntegrator) GetUserID(ctx context.Context, tokens *domain.OAuthTokens) (string, error) {
	userInfo, err := s.client.GetUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return "", err
	}
	return userInfo.Sub, nil
}

func (s *LinkedInIntegrator) DeAuthorize(ctx context.Context, integration *domain.Integration) error {
	return s.client.RevokeToken(ctx, integration.AccessToken)
}

func (s *LinkedInIntegrator) SaveAdAccounts(ctx context.Context, integration *domain.Integration) ([]*domain.AdAccount, error) {
	liAccounts, err := pagination.Walk(ctx, adAccountsPageSchema,
		s.client.AdAccountsFetch(integration.AccessToken), mapAdAccountsPage)
	if err != nil {
		return nil, errors.Wrap(err, "LinkedIn: erro ao buscar contas de anúncios")
	}

	accounts := make([]*domain.AdAccount, 0, len(liAccounts))
	for _, liAccount := range liAccounts {
		accounts = append(accounts, &domain.AdAccount{
			IntegrationID: integration.ID,
			ChannelType:   domain.ChannelTypeLinkedIn,
			ExternalID:    strconv.FormatInt(liAccount.ID, 10),
			Name:          liAccount.Name,
			Currency:      liAccount.Currency,
		})
	}

	return s.reconciler.SaveAccounts(accounts)
}

// GetChannelData sincroniza apenas a hierarquia de entidades; os insights
// chegam depois pelo fluxo de relatório assíncrono
func (s *LinkedInIntegrator) GetChannelData(ctx context.Context, integration *domain.Integration, _ bool) error {
	accounts, err := s.reconciler.ListAccounts(integration.ID)
	if err != nil {
		return err
	}

	failures := 0
	for _, account := range accounts {
		if _, err := s.syncHierarchy(ctx, integration.AccessToken, account); err != nil {
			failures++
			logrus.WithError(err).WithFields(logrus.Fields{
				"integration_id": integration.ID,
				"ad_account_id":  account.ID,
				"external_id":    account.ExternalID,
			}).Error("LinkedIn: falha na sincronização da conta")
		}
	}

	if failures > 0 && failures == len(accounts) {
		return errors.Errorf("LinkedIn: todas as %d contas da integração falharam na sincronização", failures)
	}

	return nil
}

// syncHierarchy grava grupos de campanha, campanhas e criativos da conta e
// retorna o mapa external_id -> id interno dos anúncios
func (s *LinkedInIntegrator) syncHierarchy(ctx context.Context, token string, account *domain.AdAccount) (map[string]string, error) {
	groups, err := pagination.Walk(ctx, campaignGroupsPageSchema,
		s.client.CampaignGroupsFetch(token, account.ExternalID), mapCampaignGroupsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar grupos de campanha")
	}

	campaigns := make([]*domain.Campaign, 0, len(groups))
	for _, group := range groups {
		campaign := &domain.Campaign{
			AdAccountID: account.ID,
			ExternalID:  strconv.FormatInt(group.ID, 10),
			Name:        group.Name,
		}
		if group.Status != "" {
			campaign.Status = &group.Status
		}
		campaigns = append(campaigns, campaign)
	}

	campaignIDs, err := s.reconciler.SaveCampaigns(campaigns)
	if err != nil {
		return nil, err
	}

	liCampaigns, err := pagination.Walk(ctx, campaignsPageSchema,
		s.client.CampaignsFetch(token, account.ExternalID), mapCampaignsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar campanhas")
	}

	adSets := make([]*domain.AdSet, 0, len(liCampaigns))
	for _, liCampaign := range liCampaigns {
		groupExternalID := urnID(liCampaign.CampaignGroup)
		campaignID, ok := campaignIDs[groupExternalID]
		if !ok {
			return nil, errors.Errorf("campanha %d referencia grupo desconhecido %s", liCampaign.ID, groupExternalID)
		}
		adSets = append(adSets, &domain.AdSet{
			AdAccountID: account.ID,
			CampaignID:  campaignID,
			ExternalID:  strconv.FormatInt(liCampaign.ID, 10),
			Name:        liCampaign.Name,
		})
	}

	adSetIDs, err := s.reconciler.SaveAdSets(adSets)
	if err != nil {
		return nil, err
	}

	creatives, err := pagination.Walk(ctx, creativesPageSchema,
		s.client.CreativesFetch(token, account.ExternalID), mapCreativesPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar criativos")
	}

	ads := make([]*domain.Ad, 0, len(creatives))
	for _, creative := range creatives {
		campaignExternalID := urnID(creative.Campaign)
		adSetID, ok := adSetIDs[campaignExternalID]
		if !ok {
			return nil, errors.Errorf("criativo %s referencia campanha desconhecida %s", creative.ID, campaignExternalID)
		}

		name := creative.Name
		if name == "" {
			name = urnID(creative.ID)
		}

		ads = append(ads, &domain.Ad{
			AdAccountID: account.ID,
			AdSetID:     adSetID,
			ExternalID:  urnID(creative.ID),
			Name:        name,
		})
	}

	return s.reconciler.SaveAds(ads)
}

func (s *LinkedInIntegrator) GetAdPreview(_ context.Context, _ *domain.Integration, _ string, _ domain.PreviewPlacement) (*domain.AdPreview, error) {
	return nil, domain.ErrPreviewNotSupported
}

func (s *LinkedInIntegrator) RunAdInsightReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, filters domain.InsightFilters) (string, error) {
	export, err := s.client.CreateAnalyticsExport(ctx, integration.AccessToken, account.ExternalID, filters)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": account.ID,
		"export_id":     export.ID,
	}).Info("LinkedIn: export de analytics criado")

	return export.ID, nil
}

func (s *LinkedInIntegrator) GetReportStatus(ctx context.Context, integration *domain.Integration, _ *domain.AdAccount, taskID string) (domain.ReportJobStatus, error) {
	export, err := s.client.GetAnalyticsExport(ctx, integration.AccessToken, taskID)
	if err != nil {
		return "", err
	}

	switch export.Status {
	case lidomain.ExportStatusPending, lidomain.ExportStatusProcessing:
		return domain.ReportJobStatusProcessing, nil
	case lidomain.ExportStatusCompleted:
		return domain.ReportJobStatusSuccess, nil
	case lidomain.ExportStatusFailed:
		return domain.ReportJobStatusFailed, nil
	case lidomain.ExportStatusCancelled:
		return domain.ReportJobStatusCanceled, nil
	}

	return "", errors.Errorf("LinkedIn: status de export desconhecido %q", export.Status)
}

// ProcessReport ressincroniza a hierarquia (para ter o mapa de anúncios
// completo) e grava as linhas do export com refresh janelado
func (s *LinkedInIntegrator) ProcessReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, taskID string, initial bool) error {
	adIDs, err := s.syncHierarchy(ctx, integration.AccessToken, account)
	if err != nil {
		return err
	}

	filters := domain.NewInsightFilters(initial, s.cfg.ChannelSync.LookbackDays)

	if err := s.insightWriter.ClearWindow(account.ID, filters); err != nil {
		return err
	}

	total, err := pagination.WalkPages(ctx, analyticsPageSchema,
		s.client.AnalyticsResultsFetch(integration.AccessToken, taskID), mapAnalyticsPage,
		func(_ context.Context, rows []lidomain.AnalyticsRow) error {
			insights := s.buildInsights(account, rows)

			if err := s.reconciler.ResolveAdIDs(insights, adIDs); err != nil {
				return err
			}

			return s.insightWriter.Write(insights)
		})
	if err != nil {
		return errors.Wrap(err, "erro ao baixar export de analytics")
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": account.ID,
		"export_id":     taskID,
		"insights":      total,
	}).Info("LinkedIn: export de analytics processado")

	return nil
}

func (s *LinkedInIntegrator) buildInsights(account *domain.AdAccount, rows []lidomain.AnalyticsRow) []*domain.Insight {
	insights := make([]*domain.Insight, 0, len(rows))

	for _, row := range rows {
		spendCents, ok := utils.CentsFromDecimalString(row.CostInLocalCurrency)
		if !ok && row.CostInLocalCurrency != "" {
			logrus.WithFields(logrus.Fields{
				"creative":   row.Creative,
				"cost_value": row.CostInLocalCurrency,
			}).Warn("LinkedIn: valor de custo não numérico no export")
		}

		insights = append(insights, &domain.Insight{
			AdAccountID: account.ID,
			AdID:        urnID(row.Creative),
			Date:        linkedinclient.DayToTime(row.DateRange.Start),
			Impressions: row.Impressions,
			SpendCents:  spendCents,
			Clicks:      row.Clicks,
		})
	}

	return insights
}

func (s *LinkedInIntegrator) SignOutCallback(_ string) (string, error) {
	return "", domain.ErrSignOutNotSupported
}

func (s *LinkedInIntegrator) AuthErrorMessages() []string {
	return authErrorMessages
}

// urnID extrai o identificador final de um urn ("urn:li:sponsoredCreative:123")
func urnID(urn string) string {
	if index := strings.LastIndex(urn, ":"); index >= 0 {
		return urn[index+1:]
	}
	return urn
}

func mapAdAccountsPage(raw []byte) ([]lidomain.AdAccount, error) {
	page := lidomain.AdAccountsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Elements, nil
}

func mapCampaignGroupsPage(raw []byte) ([]lidomain.CampaignGroup, error) {
	page := lidomain.CampaignGroupsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Elements, nil
}

func mapCampaignsPage(raw []byte) ([]lidomain.Campaign, error) {
	page := lidomain.CampaignsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Elements, nil
}

func mapCreativesPage(raw []byte) ([]lidomain.Creative, error) {
	page := lidomain.CreativesPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Elements, nil
}

func mapAnalyticsPage(raw []byte) ([]lidomain.AnalyticsRow, error) {
	page := lidomain.AnalyticsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Elements, nil
}

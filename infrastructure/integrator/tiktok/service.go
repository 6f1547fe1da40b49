package tiktok

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ttdomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok/domain"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok/tiktokclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/reconciler"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
	"github.com/vfg2006/channel-sync-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var authErrorMessages = []string{
	"Access token is incorrect or has been revoked",
	"Access token has expired",
	"The user is not authorized",
	"Permission denied",
}

// TikTokIntegrator sincroniza a API de negócios do TikTok. Os insights usam o
// fluxo assíncrono de tarefas de relatório; a hierarquia local mapeia
// campaign -> campanha, adgroup -> conjunto e ad -> anúncio.
type TikTokIntegrator struct {
	cfg           *config.Config
	client        tiktokclient.Client
	reconciler    *reconciler.Reconciler
	insightWriter *reconciler.InsightWriter
}

func New(cfg *config.Config, client tiktokclient.Client, rec *reconciler.Reconciler, insightWriter *reconciler.InsightWriter) *TikTokIntegrator {
	return &TikTokIntegrator{
		cfg:           cfg,
		client:        client,
		reconciler:    rec,
		insightWriter: insightWriter,
	}
}

func (s *TikTokIntegrator) Type() domain.ChannelType {
	return domain.ChannelTypeTikTok
}

func (s *TikTokIntegrator) GenerateAuthURL(state string) string {
	params := url.Values{}
	params.Set("app_id", s.cfg.TikTok.AppID)
	params.Set("redirect_uri", s.cfg.TikTok.RedirectURL)
	params.Set("state", state)

	return fmt.Sprintf("%s?%s", s.cfg.TikTok.AuthURL, params.Encode())
}

// ExchangeCodeForTokens troca o auth_code pelo token de longa duração.
// O TikTok não informa expiração nem emite refresh token.
func (s *TikTokIntegrator) ExchangeCodeForTokens(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	token, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return &domain.OAuthTokens{AccessToken: token.AccessToken}, nil
}

func (s *TikTokIntegrator) RefreshTokens(_ context.Context, _ string) (*domain.OAuthTokens, error) {
	return nil, domain.ErrTokenRefreshNotSupported
}

func (s *TikTokIntegrator) GetUserID(ctx context.Context, tokens *domain.OAuthTokens) (string, error) {
	userInfo, err := s.client.GetUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return "", err
	}
	return userInfo.CoreUserID, nil
}

func (s *TikTokIntegrator) DeAuthorize(ctx context.Context, integration *domain.Integration) error {
	return s.client.RevokeToken(ctx, integration.AccessToken)
}

// SaveAdAccounts lista os anunciantes autorizados e completa nome e moeda com
// a consulta de dados cadastrais
func (s *TikTokIntegrator) SaveAdAccounts(ctx context.Context, integration *domain.Integration) ([]*domain.AdAccount, error) {
	advertisers, err := s.client.GetAdvertisers(ctx, integration.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "TikTok: erro ao listar anunciantes")
	}

	if len(advertisers) == 0 {
		return []*domain.AdAccount{}, nil
	}

	ids := make([]string, 0, len(advertisers))
	for _, advertiser := range advertisers {
		ids = append(ids, advertiser.AdvertiserID)
	}

	infos, err := s.client.GetAdvertiserInfo(ctx, integration.AccessToken, ids)
	if err != nil {
		return nil, errors.Wrap(err, "TikTok: erro ao buscar dados dos anunciantes")
	}

	currencyByID := make(map[string]ttdomain.AdvertiserInfo, len(infos))
	for _, info := range infos {
		currencyByID[info.AdvertiserID] = info
	}

	accounts := make([]*domain.AdAccount, 0, len(advertisers))
	for _, advertiser := range advertisers {
		account := &domain.AdAccount{
			IntegrationID: integration.ID,
			ChannelType:   domain.ChannelTypeTikTok,
			ExternalID:    advertiser.AdvertiserID,
			Name:          advertiser.AdvertiserName,
		}

		if info, ok := currencyByID[advertiser.AdvertiserID]; ok {
			account.Currency = info.Currency
			if info.Name != "" {
				account.Name = info.Name
			}
		}

		accounts = append(accounts, account)
	}

	return s.reconciler.SaveAccounts(accounts)
}

// GetChannelData sincroniza apenas a hierarquia; os insights chegam pelo
// fluxo de relatório assíncrono
func (s *TikTokIntegrator) GetChannelData(ctx context.Context, integration *domain.Integration, _ bool) error {
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
			}).Error("TikTok: falha na sincronização da conta")
		}
	}

	if failures > 0 && failures == len(accounts) {
		return errors.Errorf("TikTok: todas as %d contas da integração falharam na sincronização", failures)
	}

	return nil
}

func (s *TikTokIntegrator) syncHierarchy(ctx context.Context, token string, account *domain.AdAccount) (map[string]string, error) {
	ttCampaigns, err := pagination.Walk(ctx, campaignsPageSchema,
		s.client.CampaignsFetch(token, account.ExternalID), mapCampaignsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar campanhas")
	}

	campaigns := make([]*domain.Campaign, 0, len(ttCampaigns))
	for _, ttCampaign := range ttCampaigns {
		campaign := &domain.Campaign{
			AdAccountID: account.ID,
			ExternalID:  ttCampaign.CampaignID,
			Name:        ttCampaign.CampaignName,
		}
		if ttCampaign.ObjectiveType != "" {
			campaign.Objective = &ttCampaign.ObjectiveType
		}
		if ttCampaign.OperationStatus != "" {
			campaign.Status = &ttCampaign.OperationStatus
		}
		campaigns = append(campaigns, campaign)
	}

	campaignIDs, err := s.reconciler.SaveCampaigns(campaigns)
	if err != nil {
		return nil, err
	}

	ttAdGroups, err := pagination.Walk(ctx, adGroupsPageSchema,
		s.client.AdGroupsFetch(token, account.ExternalID), mapAdGroupsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar grupos de anúncio")
	}

	adSets := make([]*domain.AdSet, 0, len(ttAdGroups))
	for _, ttAdGroup := range ttAdGroups {
		campaignID, ok := campaignIDs[ttAdGroup.CampaignID]
		if !ok {
			return nil, errors.Errorf("grupo %s referencia campanha desconhecida %s", ttAdGroup.AdGroupID, ttAdGroup.CampaignID)
		}
		adSets = append(adSets, &domain.AdSet{
			AdAccountID: account.ID,
			CampaignID:  campaignID,
			ExternalID:  ttAdGroup.AdGroupID,
			Name:        ttAdGroup.AdGroupName,
		})
	}

	adSetIDs, err := s.reconciler.SaveAdSets(adSets)
	if err != nil {
		return nil, err
	}

	ttAds, err := pagination.Walk(ctx, adsPageSchema,
		s.client.AdsFetch(token, account.ExternalID), mapAdsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar anúncios")
	}

	ads := make([]*domain.Ad, 0, len(ttAds))
	for _, ttAd := range ttAds {
		adSetID, ok := adSetIDs[ttAd.AdGroupID]
		if !ok {
			return nil, errors.Errorf("anúncio %s referencia grupo desconhecido %s", ttAd.AdID, ttAd.AdGroupID)
		}
		ads = append(ads, &domain.Ad{
			AdAccountID: account.ID,
			AdSetID:     adSetID,
			ExternalID:  ttAd.AdID,
			Name:        ttAd.AdName,
		})
	}

	return s.reconciler.SaveAds(ads)
}

func (s *TikTokIntegrator) GetAdPreview(_ context.Context, _ *domain.Integration, _ string, _ domain.PreviewPlacement) (*domain.AdPreview, error) {
	return nil, domain.ErrPreviewNotSupported
}

func (s *TikTokIntegrator) RunAdInsightReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, filters domain.InsightFilters) (string, error) {
	taskID, err := s.client.CreateReportTask(ctx, integration.AccessToken, account.ExternalID, filters)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": account.ID,
		"task_id":       taskID,
	}).Info("TikTok: tarefa de relatório criada")

	return taskID, nil
}

func (s *TikTokIntegrator) GetReportStatus(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, taskID string) (domain.ReportJobStatus, error) {
	status, err := s.client.CheckReportTask(ctx, integration.AccessToken, account.ExternalID, taskID)
	if err != nil {
		return "", err
	}

	switch status {
	case ttdomain.TaskStatusQueuing:
		return domain.ReportJobStatusQueuing, nil
	case ttdomain.TaskStatusProcessing:
		return domain.ReportJobStatusProcessing, nil
	case ttdomain.TaskStatusSuccess:
		return domain.ReportJobStatusSuccess, nil
	case ttdomain.TaskStatusFailed:
		return domain.ReportJobStatusFailed, nil
	case ttdomain.TaskStatusCanceled:
		return domain.ReportJobStatusCanceled, nil
	}

	return "", errors.Errorf("TikTok: status de tarefa desconhecido %q", status)
}

// ProcessReport ressincroniza a hierarquia e grava as linhas do relatório com
// refresh janelado
func (s *TikTokIntegrator) ProcessReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, taskID string, initial bool) error {
	adIDs, err := s.syncHierarchy(ctx, integration.AccessToken, account)
	if err != nil {
		return err
	}

	filters := domain.NewInsightFilters(initial, s.cfg.ChannelSync.LookbackDays)

	if err := s.insightWriter.ClearWindow(account.ID, filters); err != nil {
		return err
	}

	total, err := pagination.WalkPages(ctx, reportPageSchema,
		s.client.ReportResultsFetch(integration.AccessToken, account.ExternalID, taskID), mapReportPage,
		func(_ context.Context, rows []ttdomain.ReportRow) error {
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
		return errors.Wrap(err, "erro ao baixar relatório")
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": account.ID,
		"task_id":       taskID,
		"insights":      total,
	}).Info("TikTok: relatório processado")

	return nil
}

func (s *TikTokIntegrator) buildInsights(account *domain.AdAccount, rows []ttdomain.ReportRow) ([]*domain.Insight, error) {
	insights := make([]*domain.Insight, 0, len(rows))

	for _, row := range rows {
		date, err := parseStatDay(row.Dimensions.StatTimeDay)
		if err != nil {
			return nil, errors.Wrapf(err, "data inválida no relatório do anúncio %s", row.Dimensions.AdID)
		}

		spendCents, ok := utils.CentsFromDecimalString(row.Metrics.Spend)
		if !ok && row.Metrics.Spend != "" {
			logrus.WithFields(logrus.Fields{
				"ad_external_id": row.Dimensions.AdID,
				"spend_value":    row.Metrics.Spend,
			}).Warn("TikTok: valor de gasto não numérico no relatório")
		}

		insight := &domain.Insight{
			AdAccountID: account.ID,
			AdID:        row.Dimensions.AdID,
			Date:        date,
			Impressions: parseCount(row.Metrics.Impressions),
			SpendCents:  spendCents,
		}

		if row.Metrics.Clicks != "" {
			clicks := parseCount(row.Metrics.Clicks)
			insight.Clicks = &clicks
		}

		insights = append(insights, insight)
	}

	return insights, nil
}

// parseStatDay aceita os dois formatos de data usados pelos relatórios
func parseStatDay(value string) (time.Time, error) {
	if date, err := time.Parse(time.DateOnly, value); err == nil {
		return date, nil
	}
	return time.Parse(time.DateTime, value)
}

func parseCount(value string) int64 {
	if value == "" {
		return 0
	}

	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithField("value", value).Warn("TikTok: valor de contagem não numérico no relatório")
		return 0
	}

	return count
}

func (s *TikTokIntegrator) SignOutCallback(_ string) (string, error) {
	return "", domain.ErrSignOutNotSupported
}

func (s *TikTokIntegrator) AuthErrorMessages() []string {
	return authErrorMessages
}

func mapCampaignsPage(raw []byte) ([]ttdomain.Campaign, error) {
	page := ttdomain.CampaignsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.List, nil
}

func mapAdGroupsPage(raw []byte) ([]ttdomain.AdGroup, error) {
	page := ttdomain.AdGroupsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.List, nil
}

func mapAdsPage(raw []byte) ([]ttdomain.Ad, error) {
	page := ttdomain.AdsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.List, nil
}

func mapReportPage(raw []byte) ([]ttdomain.ReportRow, error) {
	page := ttdomain.ReportPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.List, nil
}

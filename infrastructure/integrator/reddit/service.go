package reddit

import (
	"context"
	"fmt"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	rddomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/reddit/redditclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/reconciler"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var authErrorMessages = []string{
	"Invalid or expired access token",
	"invalid_grant",
	"insufficient_scope",
	"User has revoked access",
}

// RedditIntegrator sincroniza a API de ads do Reddit. Os insights usam o fluxo
// de relatório assíncrono; a hierarquia local mapeia campaign -> campanha,
// ad group -> conjunto e ad -> anúncio.
type RedditIntegrator struct {
	cfg           *config.Config
	client        redditclient.Client
	reconciler    *reconciler.Reconciler
	insightWriter *reconciler.InsightWriter
}

func New(cfg *config.Config, client redditclient.Client, rec *reconciler.Reconciler, insightWriter *reconciler.InsightWriter) *RedditIntegrator {
	return &RedditIntegrator{
		cfg:           cfg,
		client:        client,
		reconciler:    rec,
		insightWriter: insightWriter,
	}
}

func (s *RedditIntegrator) Type() domain.ChannelType {
	return domain.ChannelTypeReddit
}

func (s *RedditIntegrator) GenerateAuthURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.cfg.Reddit.ClientID)
	params.Set("redirect_uri", s.cfg.Reddit.RedirectURL)
	params.Set("state", state)
	params.Set("duration", "permanent")
	params.Set("scope", "adsread")

	return fmt.Sprintf("%s/authorize?%s", s.cfg.Reddit.AuthURL, params.Encode())
}

func (s *RedditIntegrator) ExchangeCodeForTokens(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	response, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return tokensFromResponse(response), nil
}

// RefreshTokens renova o access token; o Reddit mantém o mesmo refresh token
// quando a resposta não traz um novo
func (s *RedditIntegrator) RefreshTokens(ctx context.Context, refreshToken string) (*domain.OAuthTokens, error) {
	response, err := s.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	tokens := tokensFromResponse(response)
	if tokens.RefreshToken == nil {
		keep := refreshToken
		tokens.RefreshToken = &keep
	}

	return tokens, nil
}

func tokensFromResponse(response *rddomain.TokenResponse) *domain.OAuthTokens {
	tokens := &domain.OAuthTokens{AccessToken: response.AccessToken}

	if response.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(response.ExpiresIn) * time.Second)
		tokens.AccessTokenExpiresAt = &expiresAt
	}

	if response.RefreshToken != "" {
		refreshToken := response.RefreshToken
		tokens.RefreshToken = &refreshToken
	}

	return tokens
}

func (s *RedditIntegrator) GetUserID(ctx context.Context, tokens *domain.OAuthTokens) (string, error) {
	me, err := s.client.GetMe(ctx, tokens.AccessToken)
	if err != nil {
		return "", err
	}
	return me.ID, nil
}

func (s *RedditIntegrator) DeAuthorize(ctx context.Context, integration *domain.Integration) error {
	return s.client.RevokeToken(ctx, integration.AccessToken)
}

func (s *RedditIntegrator) SaveAdAccounts(ctx context.Context, integration *domain.Integration) ([]*domain.AdAccount, error) {
	rdAccounts, err := pagination.Walk(ctx, adAccountsPageSchema,
		s.client.AdAccountsFetch(integration.AccessToken), mapAdAccountsPage)
	if err != nil {
		return nil, errors.Wrap(err, "Reddit: erro ao listar contas de anúncio")
	}

	accounts := make([]*domain.AdAccount, 0, len(rdAccounts))
	for _, rdAccount := range rdAccounts {
		accounts = append(accounts, &domain.AdAccount{
			IntegrationID: integration.ID,
			ChannelType:   domain.ChannelTypeReddit,
			ExternalID:    rdAccount.ID,
			Name:          rdAccount.Name,
			Currency:      rdAccount.Currency,
		})
	}

	return s.reconciler.SaveAccounts(accounts)
}

// GetChannelData sincroniza apenas a hierarquia; os insights chegam pelo
// fluxo de relatório assíncrono
func (s *RedditIntegrator) GetChannelData(ctx context.Context, integration *domain.Integration, _ bool) error {
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
			}).Error("Reddit: falha na sincronização da conta")
		}
	}

	if failures > 0 && failures == len(accounts) {
		return errors.Errorf("Reddit: todas as %d contas da integração falharam na sincronização", failures)
	}

	return nil
}

func (s *RedditIntegrator) syncHierarchy(ctx context.Context, token string, account *domain.AdAccount) (map[string]string, error) {
	rdCampaigns, err := pagination.Walk(ctx, campaignsPageSchema,
		s.client.CampaignsFetch(token, account.ExternalID), mapCampaignsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar campanhas")
	}

	campaigns := make([]*domain.Campaign, 0, len(rdCampaigns))
	for _, rdCampaign := range rdCampaigns {
		campaign := &domain.Campaign{
			AdAccountID: account.ID,
			ExternalID:  rdCampaign.ID,
			Name:        rdCampaign.Name,
		}
		if rdCampaign.Objective != "" {
			campaign.Objective = &rdCampaign.Objective
		}
		if rdCampaign.EffectiveStatus != "" {
			campaign.Status = &rdCampaign.EffectiveStatus
		}
		campaigns = append(campaigns, campaign)
	}

	campaignIDs, err := s.reconciler.SaveCampaigns(campaigns)
	if err != nil {
		return nil, err
	}

	rdAdGroups, err := pagination.Walk(ctx, adGroupsPageSchema,
		s.client.AdGroupsFetch(token, account.ExternalID), mapAdGroupsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar grupos de anúncio")
	}

	adSets := make([]*domain.AdSet, 0, len(rdAdGroups))
	for _, rdAdGroup := range rdAdGroups {
		campaignID, ok := campaignIDs[rdAdGroup.CampaignID]
		if !ok {
			return nil, errors.Errorf("grupo %s referencia campanha desconhecida %s", rdAdGroup.ID, rdAdGroup.CampaignID)
		}
		adSets = append(adSets, &domain.AdSet{
			AdAccountID: account.ID,
			CampaignID:  campaignID,
			ExternalID:  rdAdGroup.ID,
			Name:        rdAdGroup.Name,
		})
	}

	adSetIDs, err := s.reconciler.SaveAdSets(adSets)
	if err != nil {
		return nil, err
	}

	rdAds, err := pagination.Walk(ctx, adsPageSchema,
		s.client.AdsFetch(token, account.ExternalID), mapAdsPage)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar anúncios")
	}

	ads := make([]*domain.Ad, 0, len(rdAds))
	for _, rdAd := range rdAds {
		adSetID, ok := adSetIDs[rdAd.AdGroupID]
		if !ok {
			return nil, errors.Errorf("anúncio %s referencia grupo desconhecido %s", rdAd.ID, rdAd.AdGroupID)
		}
		ads = append(ads, &domain.Ad{
			AdAccountID: account.ID,
			AdSetID:     adSetID,
			ExternalID:  rdAd.ID,
			Name:        rdAd.Name,
		})
	}

	return s.reconciler.SaveAds(ads)
}

func (s *RedditIntegrator) GetAdPreview(_ context.Context, _ *domain.Integration, _ string, _ domain.PreviewPlacement) (*domain.AdPreview, error) {
	return nil, domain.ErrPreviewNotSupported
}

func (s *RedditIntegrator) RunAdInsightReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, filters domain.InsightFilters) (string, error) {
	reportID, err := s.client.CreateReport(ctx, integration.AccessToken, account.ExternalID, filters)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": account.ID,
		"report_id":     reportID,
	}).Info("Reddit: relatório criado")

	return reportID, nil
}

func (s *RedditIntegrator) GetReportStatus(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, taskID string) (domain.ReportJobStatus, error) {
	report, err := s.client.GetReport(ctx, integration.AccessToken, account.ExternalID, taskID)
	if err != nil {
		return "", err
	}

	switch report.Status {
	case rddomain.ReportStatusPending, rddomain.ReportStatusRunning:
		return domain.ReportJobStatusProcessing, nil
	case rddomain.ReportStatusSuccess:
		return domain.ReportJobStatusSuccess, nil
	case rddomain.ReportStatusError:
		return domain.ReportJobStatusFailed, nil
	case rddomain.ReportStatusCancelled:
		return domain.ReportJobStatusCanceled, nil
	}

	return "", errors.Errorf("Reddit: status de relatório desconhecido %q", report.Status)
}

// ProcessReport ressincroniza a hierarquia e grava as linhas do relatório com
// refresh janelado
func (s *RedditIntegrator) ProcessReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, taskID string, initial bool) error {
	adIDs, err := s.syncHierarchy(ctx, integration.AccessToken, account)
	if err != nil {
		return err
	}

	filters := domain.NewInsightFilters(initial, s.cfg.ChannelSync.LookbackDays)

	if err := s.insightWriter.ClearWindow(account.ID, filters); err != nil {
		return err
	}

	total, err := pagination.WalkPages(ctx, reportResultsPageSchema,
		s.client.ReportResultsFetch(integration.AccessToken, account.ExternalID, taskID), mapReportResultsPage,
		func(_ context.Context, rows []rddomain.ReportRow) error {
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
		"report_id":     taskID,
		"insights":      total,
	}).Info("Reddit: relatório processado")

	return nil
}

func (s *RedditIntegrator) buildInsights(account *domain.AdAccount, rows []rddomain.ReportRow) ([]*domain.Insight, error) {
	insights := make([]*domain.Insight, 0, len(rows))

	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "data inválida no relatório do anúncio %s", row.AdID)
		}

		insight := &domain.Insight{
			AdAccountID: account.ID,
			AdID:        row.AdID,
			Date:        date,
			Impressions: row.Impressions,
			SpendCents:  centsFromMicros(row.SpendMicros),
		}

		if row.Clicks != nil {
			clicks := *row.Clicks
			insight.Clicks = &clicks
		}

		insights = append(insights, insight)
	}

	return insights, nil
}

// centsFromMicros converte microcurrency em centavos sem passar por float
func centsFromMicros(micros int64) int64 {
	return micros / 10000
}

func (s *RedditIntegrator) SignOutCallback(_ string) (string, error) {
	return "", domain.ErrSignOutNotSupported
}

func (s *RedditIntegrator) AuthErrorMessages() []string {
	return authErrorMessages
}

func mapAdAccountsPage(raw []byte) ([]rddomain.AdAccount, error) {
	page := rddomain.AdAccountsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapCampaignsPage(raw []byte) ([]rddomain.Campaign, error) {
	page := rddomain.CampaignsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapAdGroupsPage(raw []byte) ([]rddomain.AdGroup, error) {
	page := rddomain.AdGroupsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapAdsPage(raw []byte) ([]rddomain.Ad, error) {
	page := rddomain.AdsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func mapReportResultsPage(raw []byte) ([]rddomain.ReportRow, error) {
	page := rddomain.ReportResultsPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

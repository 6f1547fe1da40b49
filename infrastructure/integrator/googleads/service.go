package googleads

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gadomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/googleads/googleadsclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/reconciler"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var authErrorMessages = []string{
	"Token has been expired or revoked",
	"invalid_grant",
	"The caller does not have permission",
	"User doesn't have permission to access customer",
}

// GoogleAdsIntegrator sincroniza a API do Google Ads via queries GAQL. O canal
// não usa relatórios assíncronos: searchStream/search entregam os insights
// inline durante o GetChannelData.
type GoogleAdsIntegrator struct {
	cfg           *config.Config
	client        googleadsclient.Client
	reconciler    *reconciler.Reconciler
	insightWriter *reconciler.InsightWriter
}

func New(cfg *config.Config, client googleadsclient.Client, rec *reconciler.Reconciler, insightWriter *reconciler.InsightWriter) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		cfg:           cfg,
		client:        client,
		reconciler:    rec,
		insightWriter: insightWriter,
	}
}

func (s *GoogleAdsIntegrator) Type() domain.ChannelType {
	return domain.ChannelTypeGoogle
}

func (s *GoogleAdsIntegrator) GenerateAuthURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.cfg.Google.ClientID)
	params.Set("redirect_uri", s.cfg.Google.RedirectURL)
	params.Set("state", state)
	params.Set("scope", "https://www.googleapis.com/auth/adwords openid")
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")

	return fmt.Sprintf("%s?%s", s.cfg.Google.AuthURL, params.Encode())
}

func (s *GoogleAdsIntegrator) ExchangeCodeForTokens(ctx context.Context, code string) (*domain.OAuthTokens, error) {
	response, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return tokensFromResponse(response), nil
}

func (s *GoogleAdsIntegrator) RefreshTokens(ctx context.Context, refreshToken string) (*domain.OAuthTokens, error) {
	response, err := s.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	tokens := tokensFromResponse(response)
	if tokens.RefreshToken == nil {
		// O Google só devolve o refresh token na troca inicial; a renovação
		// mantém o que já está gravado
		tokens.RefreshToken = &refreshToken
	}

	return tokens, nil
}

func tokensFromResponse(response *gadomain.TokenResponse) *domain.OAuthTokens {
	tokens := &domain.OAuthTokens{AccessToken: response.AccessToken}

	if response.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(response.ExpiresIn) * time.Second)
		tokens.AccessTokenExpiresAt = &expiresAt
	}

	if response.RefreshToken != "" {
		refreshToken := response.RefreshToken
		tokens.RefreshToken = &refreshToken
	}

	if response.IDToken != "" {
		idToken := response.IDToken
		tokens.IDToken = &idToken
	}

	return tokens
}

// GetUserID extrai o claim sub do id_token. O parse é sem verificação de
// assinatura: o token acabou de chegar direto do endpoint de token do Google
// por TLS, e só o identificador interessa.
func (s *GoogleAdsIntegrator) GetUserID(_ context.Context, tokens *domain.OAuthTokens) (string, error) {
	if tokens.IDToken == nil || *tokens.IDToken == "" {
		return "", errors.New("Google: resposta de token sem id_token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(*tokens.IDToken, claims); err != nil {
		return "", errors.Wrap(err, "Google: erro ao decodificar id_token")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("Google: id_token sem claim sub")
	}

	return sub, nil
}

func (s *GoogleAdsIntegrator) DeAuthorize(ctx context.Context, integration *domain.Integration) error {
	return s.client.RevokeToken(ctx, integration.AccessToken)
}

func (s *GoogleAdsIntegrator) SaveAdAccounts(ctx context.Context, integration *domain.Integration) ([]*domain.AdAccount, error) {
	customerIDs, err := s.client.ListAccessibleCustomers(ctx, integration.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "Google: erro ao listar contas acessíveis")
	}

	accounts := make([]*domain.AdAccount, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		customer, err := s.fetchCustomer(ctx, integration.AccessToken, customerID)
		if err != nil {
			logrus.WithError(err).WithField("customer_id", customerID).
				Warn("Google: erro ao buscar dados da conta; conta ignorada nesta sincronização")
			continue
		}

		accounts = append(accounts, &domain.AdAccount{
			IntegrationID: integration.ID,
			ChannelType:   domain.ChannelTypeGoogle,
			ExternalID:    customer.ID,
			Name:          customer.DescriptiveName,
			Currency:      customer.CurrencyCode,
		})
	}

	return s.reconciler.SaveAccounts(accounts)
}

func (s *GoogleAdsIntegrator) fetchCustomer(ctx context.Context, token, customerID string) (*gadomain.Customer, error) {
	query := "SELECT customer.id, customer.descriptive_name, customer.currency_code FROM customer"

	results, err := pagination.Walk(ctx, customerSearchSchema,
		s.client.SearchFetch(token, customerID, query), mapSearchPage)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		if result.Customer != nil {
			return result.Customer, nil
		}
	}

	return nil, errors.Errorf("busca de customer %s não retornou resultados", customerID)
}

// GetChannelData sincroniza campanhas, grupos, anúncios e insights de todas
// as contas da integração. Uma conta que falha não impede as demais.
func (s *GoogleAdsIntegrator) GetChannelData(ctx context.Context, integration *domain.Integration, initial bool) error {
	accounts, err := s.reconciler.ListAccounts(integration.ID)
	if err != nil {
		return err
	}

	filters := domain.NewInsightFilters(initial, s.cfg.ChannelSync.LookbackDays)

	failures := 0
	for _, account := range accounts {
		if err := s.syncAccount(ctx, integration.AccessToken, account, filters); err != nil {
			failures++
			logrus.WithError(err).WithFields(logrus.Fields{
				"integration_id": integration.ID,
				"ad_account_id":  account.ID,
				"external_id":    account.ExternalID,
			}).Error("Google: falha na sincronização da conta")
		}
	}

	if failures > 0 && failures == len(accounts) {
		return errors.Errorf("Google: todas as %d contas da integração falharam na sincronização", failures)
	}

	return nil
}

func (s *GoogleAdsIntegrator) syncAccount(ctx context.Context, token string, account *domain.AdAccount, filters domain.InsightFilters) error {
	campaignResults, err := pagination.Walk(ctx, campaignsSearchSchema,
		s.client.SearchFetch(token, account.ExternalID,
			"SELECT campaign.id, campaign.name, campaign.status FROM campaign"), mapSearchPage)
	if err != nil {
		return errors.Wrap(err, "erro ao buscar campanhas")
	}

	campaigns := make([]*domain.Campaign, 0, len(campaignResults))
	for _, result := range campaignResults {
		campaign := &domain.Campaign{
			AdAccountID: account.ID,
			ExternalID:  result.Campaign.ID,
			Name:        result.Campaign.Name,
		}
		if result.Campaign.Status != "" {
			status := result.Campaign.Status
			campaign.Status = &status
		}
		campaigns = append(campaigns, campaign)
	}

	campaignIDs, err := s.reconciler.SaveCampaigns(campaigns)
	if err != nil {
		return err
	}

	adGroupResults, err := pagination.Walk(ctx, adGroupsSearchSchema,
		s.client.SearchFetch(token, account.ExternalID,
			"SELECT ad_group.id, ad_group.name, campaign.id FROM ad_group"), mapSearchPage)
	if err != nil {
		return errors.Wrap(err, "erro ao buscar grupos de anúncios")
	}

	adSets := make([]*domain.AdSet, 0, len(adGroupResults))
	for _, result := range adGroupResults {
		campaignID, ok := campaignIDs[result.Campaign.ID]
		if !ok {
			return errors.Errorf("grupo %s referencia campanha desconhecida %s", result.AdGroup.ID, result.Campaign.ID)
		}
		adSets = append(adSets, &domain.AdSet{
			AdAccountID: account.ID,
			CampaignID:  campaignID,
			ExternalID:  result.AdGroup.ID,
			Name:        result.AdGroup.Name,
		})
	}

	adSetIDs, err := s.reconciler.SaveAdSets(adSets)
	if err != nil {
		return err
	}

	adResults, err := pagination.Walk(ctx, adsSearchSchema,
		s.client.SearchFetch(token, account.ExternalID,
			"SELECT ad_group_ad.ad.id, ad_group_ad.ad.name, ad_group.id FROM ad_group_ad"), mapSearchPage)
	if err != nil {
		return errors.Wrap(err, "erro ao buscar anúncios")
	}

	ads := make([]*domain.Ad, 0, len(adResults))
	for _, result := range adResults {
		adSetID, ok := adSetIDs[result.AdGroup.ID]
		if !ok {
			return errors.Errorf("anúncio %s referencia grupo desconhecido %s", result.AdGroupAd.Ad.ID, result.AdGroup.ID)
		}

		name := result.AdGroupAd.Ad.Name
		if name == "" {
			name = result.AdGroupAd.Ad.ID
		}

		ads = append(ads, &domain.Ad{
			AdAccountID: account.ID,
			AdSetID:     adSetID,
			ExternalID:  result.AdGroupAd.Ad.ID,
			Name:        name,
		})
	}

	adIDs, err := s.reconciler.SaveAds(ads)
	if err != nil {
		return err
	}

	return s.syncInsights(ctx, token, account, filters, adIDs)
}

func (s *GoogleAdsIntegrator) syncInsights(ctx context.Context, token string, account *domain.AdAccount, filters domain.InsightFilters, adIDs map[string]string) error {
	if err := s.insightWriter.ClearWindow(account.ID, filters); err != nil {
		return err
	}

	query := fmt.Sprintf(
		"SELECT ad_group_ad.ad.id, segments.date, segments.device, segments.ad_network_type, "+
			"metrics.impressions, metrics.cost_micros, metrics.clicks "+
			"FROM ad_group_ad WHERE segments.date BETWEEN '%s' AND '%s'",
		filters.Since.Format(time.DateOnly), filters.Until.Format(time.DateOnly))

	total, err := pagination.WalkPages(ctx, insightsSearchSchema,
		s.client.SearchFetch(token, account.ExternalID, query), mapSearchPage,
		func(_ context.Context, results []gadomain.SearchResult) error {
			insights, err := s.buildInsights(account, results)
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
	}).Info("Google: insights da conta sincronizados")

	return nil
}

func (s *GoogleAdsIntegrator) buildInsights(account *domain.AdAccount, results []gadomain.SearchResult) ([]*domain.Insight, error) {
	insights := make([]*domain.Insight, 0, len(results))

	for _, result := range results {
		date, err := time.Parse(time.DateOnly, result.Segments.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "data inválida no insight do anúncio %s", result.AdGroupAd.Ad.ID)
		}

		insight := &domain.Insight{
			AdAccountID: account.ID,
			AdID:        result.AdGroupAd.Ad.ID,
			Date:        date,
			Device:      result.Segments.Device,
			Publisher:   result.Segments.AdNetworkType,
		}

		if result.Metrics != nil {
			insight.Impressions = parseCount(result.Metrics.Impressions)
			insight.SpendCents = centsFromMicros(result.Metrics.CostMicros)

			if result.Metrics.Clicks != "" {
				clicks := parseCount(result.Metrics.Clicks)
				insight.Clicks = &clicks
			}
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
		logrus.WithField("value", value).Warn("Google: valor de contagem não numérico no insight")
		return 0
	}

	return count
}

// centsFromMicros converte cost_micros (milionésimos da moeda) para centavos
func centsFromMicros(value string) int64 {
	if value == "" {
		return 0
	}

	micros, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithField("value", value).Warn("Google: valor de custo não numérico no insight")
		return 0
	}

	return micros / 10000
}

func (s *GoogleAdsIntegrator) GetAdPreview(_ context.Context, _ *domain.Integration, _ string, _ domain.PreviewPlacement) (*domain.AdPreview, error) {
	return nil, domain.ErrPreviewNotSupported
}

func (s *GoogleAdsIntegrator) RunAdInsightReport(_ context.Context, _ *domain.Integration, _ *domain.AdAccount, _ domain.InsightFilters) (string, error) {
	return "", domain.ErrReportsNotSupported
}

func (s *GoogleAdsIntegrator) GetReportStatus(_ context.Context, _ *domain.Integration, _ *domain.AdAccount, _ string) (domain.ReportJobStatus, error) {
	return "", domain.ErrReportsNotSupported
}

func (s *GoogleAdsIntegrator) ProcessReport(_ context.Context, _ *domain.Integration, _ *domain.AdAccount, _ string, _ bool) error {
	return domain.ErrReportsNotSupported
}

func (s *GoogleAdsIntegrator) SignOutCallback(_ string) (string, error) {
	return "", domain.ErrSignOutNotSupported
}

func (s *GoogleAdsIntegrator) AuthErrorMessages() []string {
	return authErrorMessages
}

func mapSearchPage(raw []byte) ([]gadomain.SearchResult, error) {
	page := gadomain.SearchPage{}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

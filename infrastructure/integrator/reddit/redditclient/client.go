package redditclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	rddomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const pageSize = 100

type Client interface {
	ExchangeCode(ctx context.Context, code string) (*rddomain.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*rddomain.TokenResponse, error)
	RevokeToken(ctx context.Context, token string) error
	GetMe(ctx context.Context, accessToken string) (*rddomain.Me, error)
	AdAccountsFetch(accessToken string) pagination.FetchFunc
	CampaignsFetch(accessToken, adAccountID string) pagination.FetchFunc
	AdGroupsFetch(accessToken, adAccountID string) pagination.FetchFunc
	AdsFetch(accessToken, adAccountID string) pagination.FetchFunc
	CreateReport(ctx context.Context, accessToken, adAccountID string, filters domain.InsightFilters) (string, error)
	GetReport(ctx context.Context, accessToken, adAccountID, reportID string) (*rddomain.Report, error)
	ReportResultsFetch(accessToken, adAccountID, reportID string) pagination.FetchFunc
}

type RedditClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &RedditClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: integrator.DefaultHTTPTimeout,
		},
	}
}

func (c *RedditClient) get(ctx context.Context, path string, params url.Values, accessToken string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s%s", c.cfg.Reddit.BaseURL, path)
	if len(params) > 0 {
		endpoint = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	return integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		return req, nil
	})
}

// pageFetch caminha a paginação por fullname do Reddit: o cursor é o campo
// after da página anterior, e a ausência dele encerra a caminhada
func (c *RedditClient) pageFetch(path string, params url.Values, accessToken string) pagination.FetchFunc {
	return func(ctx context.Context, cursor *string) ([]byte, *string, error) {
		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		pageParams.Set("page.size", strconv.Itoa(pageSize))
		if cursor != nil {
			pageParams.Set("after", *cursor)
		}

		data, err := c.get(ctx, path, pageParams, accessToken)
		if err != nil {
			return nil, nil, err
		}

		next, err := nextAfter(data)
		if err != nil {
			return nil, nil, err
		}

		return data, next, nil
	}
}

func nextAfter(data []byte) (*string, error) {
	envelope := rddomain.PageEnvelope{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("erro ao extrair paginação da resposta: %w", err)
	}

	if envelope.Pagination == nil || envelope.Pagination.After == "" {
		return nil, nil
	}

	after := envelope.Pagination.After
	return &after, nil
}

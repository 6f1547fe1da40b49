package linkedinclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	lidomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	pageCount       = 100
	linkedinVersion = "202405"
	restliProtocol  = "2.0.0"
)

type Client interface {
	ExchangeCode(ctx context.Context, code string) (*lidomain.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*lidomain.TokenResponse, error)
	GetUserInfo(ctx context.Context, accessToken string) (*lidomain.UserInfo, error)
	RevokeToken(ctx context.Context, accessToken string) error
	AdAccountsFetch(accessToken string) pagination.FetchFunc
	CampaignGroupsFetch(accessToken, accountExternalID string) pagination.FetchFunc
	CampaignsFetch(accessToken, accountExternalID string) pagination.FetchFunc
	CreativesFetch(accessToken, accountExternalID string) pagination.FetchFunc
	CreateAnalyticsExport(ctx context.Context, accessToken, accountExternalID string, filters domain.InsightFilters) (*lidomain.Export, error)
	GetAnalyticsExport(ctx context.Context, accessToken, exportID string) (*lidomain.Export, error)
	AnalyticsResultsFetch(accessToken, exportID string) pagination.FetchFunc
}

type LinkedInClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &LinkedInClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: integrator.DefaultHTTPTimeout,
		},
	}
}

func (c *LinkedInClient) restRequest(ctx context.Context, method, endpoint, accessToken string, body string) ([]byte, error) {
	return integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		var reader *strings.Reader
		if body != "" {
			reader = strings.NewReader(body)
		} else {
			reader = strings.NewReader("")
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("LinkedIn-Version", linkedinVersion)
		req.Header.Set("X-Restli-Protocol-Version", restliProtocol)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}

		return req, nil
	})
}

// pageFetch mapeia a paginação por índice (start/count) do LinkedIn no
// contrato de cursor do driver: o cursor é o índice inicial da próxima página
func (c *LinkedInClient) pageFetch(path string, params url.Values, accessToken string) pagination.FetchFunc {
	return func(ctx context.Context, cursor *string) ([]byte, *string, error) {
		start := 0
		if cursor != nil {
			parsed, err := strconv.Atoi(*cursor)
			if err != nil {
				return nil, nil, fmt.Errorf("cursor de paginação inválido %q: %w", *cursor, err)
			}
			start = parsed
		}

		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		pageParams.Set("start", strconv.Itoa(start))
		pageParams.Set("count", strconv.Itoa(pageCount))

		endpoint := fmt.Sprintf("%s%s?%s", c.cfg.LinkedIn.BaseURL, path, pageParams.Encode())

		raw, err := c.restRequest(ctx, http.MethodGet, endpoint, accessToken, "")
		if err != nil {
			return nil, nil, err
		}

		next, err := nextStart(raw, start)
		if err != nil {
			return nil, nil, err
		}

		return raw, next, nil
	}
}

func nextStart(raw []byte, start int) (*string, error) {
	envelope := lidomain.PageEnvelope{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("erro ao extrair paginação da resposta: %w", err)
	}

	if envelope.Paging == nil || len(envelope.Elements) == 0 {
		return nil, nil
	}

	consumed := start + len(envelope.Elements)
	if consumed >= envelope.Paging.Total {
		return nil, nil
	}

	next := strconv.Itoa(consumed)
	return &next, nil
}

package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	metadomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	ExchangeCode(ctx context.Context, code string) (*metadomain.TokenResponse, error)
	ExchangeLongLivedToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error)
	DebugToken(ctx context.Context, inputToken string) (*metadomain.DebugTokenData, error)
	GetMe(ctx context.Context, accessToken string) (string, error)
	RevokePermissions(ctx context.Context, userExternalID, accessToken string) error
	AdAccountsFetch(accessToken string) pagination.FetchFunc
	CampaignsFetch(accessToken, accountExternalID string) pagination.FetchFunc
	AdSetsFetch(accessToken, accountExternalID string) pagination.FetchFunc
	AdsFetch(accessToken, accountExternalID string) pagination.FetchFunc
	InsightsFetch(accessToken, accountExternalID string, filters domain.InsightFilters) pagination.FetchFunc
	GetAdPreview(ctx context.Context, accessToken, adExternalID, format string) (string, error)
}

type MetaClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: integrator.DefaultHTTPTimeout,
		},
	}
}

func (c *MetaClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s%s?%s", c.cfg.Meta.URL, path, params.Encode())

	return integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
}

// pageFetch monta um FetchFunc para um endpoint paginado por cursor. O cursor
// da caminhada é o "after" do bloco paging da página anterior.
func (c *MetaClient) pageFetch(path string, params url.Values) pagination.FetchFunc {
	return func(ctx context.Context, cursor *string) ([]byte, *string, error) {
		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		if cursor != nil {
			pageParams.Set("after", *cursor)
		}

		raw, err := c.get(ctx, path, pageParams)
		if err != nil {
			return nil, nil, err
		}

		next, err := nextCursor(raw)
		if err != nil {
			return nil, nil, err
		}

		return raw, next, nil
	}
}

func nextCursor(raw []byte) (*string, error) {
	envelope := metadomain.PagingEnvelope{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("erro ao extrair paginação da resposta: %w", err)
	}

	if envelope.Paging == nil || envelope.Paging.Next == "" || envelope.Paging.Cursors.After == "" {
		return nil, nil
	}

	after := envelope.Paging.Cursors.After
	return &after, nil
}

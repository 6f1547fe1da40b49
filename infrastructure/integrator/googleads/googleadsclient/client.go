package googleadsclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	gadomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	ExchangeCode(ctx context.Context, code string) (*gadomain.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*gadomain.TokenResponse, error)
	RevokeToken(ctx context.Context, token string) error
	ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error)
	SearchFetch(accessToken, customerID, query string) pagination.FetchFunc
}

type GoogleAdsClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GoogleAdsClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: integrator.DefaultHTTPTimeout,
		},
	}
}

func (c *GoogleAdsClient) apiHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", c.cfg.Google.DeveloperToken)
}

// ListAccessibleCustomers lista os resource names das contas acessíveis
func (c *GoogleAdsClient) ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/customers:listAccessibleCustomers", c.cfg.Google.BaseURL)

	raw, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		c.apiHeaders(req, accessToken)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas acessíveis: %w", err)
	}

	response := &gadomain.ListAccessibleCustomersResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar lista de contas: %w", err)
	}

	customerIDs := make([]string, 0, len(response.ResourceNames))
	for _, resourceName := range response.ResourceNames {
		customerIDs = append(customerIDs, strings.TrimPrefix(resourceName, "customers/"))
	}

	return customerIDs, nil
}

// SearchFetch pagina os resultados de uma query GAQL via googleAds:search.
// O cursor da caminhada é o nextPageToken da página anterior.
func (c *GoogleAdsClient) SearchFetch(accessToken, customerID, query string) pagination.FetchFunc {
	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:search", c.cfg.Google.BaseURL, customerID)

	return func(ctx context.Context, cursor *string) ([]byte, *string, error) {
		request := map[string]string{"query": query}
		if cursor != nil {
			request["pageToken"] = *cursor
		}

		body, err := json.Marshal(request)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao serializar corpo da busca: %w", err)
		}

		raw, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
			if err != nil {
				return nil, err
			}
			c.apiHeaders(req, accessToken)
			req.Header.Set("Content-Type", "application/json")
			return req, nil
		})
		if err != nil {
			return nil, nil, err
		}

		envelope := struct {
			NextPageToken string `json:"nextPageToken,omitempty"`
		}{}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, nil, fmt.Errorf("erro ao extrair paginação da resposta: %w", err)
		}

		var next *string
		if envelope.NextPageToken != "" {
			next = &envelope.NextPageToken
		}

		return raw, next, nil
	}
}

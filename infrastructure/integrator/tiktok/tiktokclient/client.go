package tiktokclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	ttdomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok/domain"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const pageSize = 200

type Client interface {
	ExchangeCode(ctx context.Context, authCode string) (*ttdomain.TokenData, error)
	GetUserInfo(ctx context.Context, accessToken string) (*ttdomain.UserInfoData, error)
	GetAdvertisers(ctx context.Context, accessToken string) ([]ttdomain.AdvertiserRef, error)
	GetAdvertiserInfo(ctx context.Context, accessToken string, advertiserIDs []string) ([]ttdomain.AdvertiserInfo, error)
	RevokeToken(ctx context.Context, accessToken string) error
	CampaignsFetch(accessToken, advertiserID string) pagination.FetchFunc
	AdGroupsFetch(accessToken, advertiserID string) pagination.FetchFunc
	AdsFetch(accessToken, advertiserID string) pagination.FetchFunc
	CreateReportTask(ctx context.Context, accessToken, advertiserID string, filters domain.InsightFilters) (string, error)
	CheckReportTask(ctx context.Context, accessToken, advertiserID, taskID string) (string, error)
	ReportResultsFetch(accessToken, advertiserID, taskID string) pagination.FetchFunc
}

type TikTokClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &TikTokClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: integrator.DefaultHTTPTimeout,
		},
	}
}

// request executa uma chamada e desembrulha o envelope padrão; code diferente
// de zero vira erro com a mensagem da API, para a classificação de token morto
func (c *TikTokClient) request(ctx context.Context, method, path string, params url.Values, accessToken, body string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s%s", c.cfg.TikTok.BaseURL, path)
	if len(params) > 0 {
		endpoint = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	raw, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(body))
		if err != nil {
			return nil, err
		}

		if accessToken != "" {
			req.Header.Set("Access-Token", accessToken)
		}
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}

		return req, nil
	})
	if err != nil {
		return nil, err
	}

	envelope := ttdomain.Envelope{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("erro ao decodificar envelope da resposta: %w", err)
	}

	if envelope.Code != 0 {
		return nil, fmt.Errorf("API do TikTok retornou código %d: %s", envelope.Code, envelope.Message)
	}

	return envelope.Data, nil
}

// pageFetch mapeia a paginação por número de página no contrato de cursor do
// driver: o cursor é o número da próxima página
func (c *TikTokClient) pageFetch(path string, params url.Values, accessToken string) pagination.FetchFunc {
	return func(ctx context.Context, cursor *string) ([]byte, *string, error) {
		page := 1
		if cursor != nil {
			parsed, err := strconv.Atoi(*cursor)
			if err != nil {
				return nil, nil, fmt.Errorf("cursor de paginação inválido %q: %w", *cursor, err)
			}
			page = parsed
		}

		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		pageParams.Set("page", strconv.Itoa(page))
		pageParams.Set("page_size", strconv.Itoa(pageSize))

		data, err := c.request(ctx, http.MethodGet, path, pageParams, accessToken, "")
		if err != nil {
			return nil, nil, err
		}

		next, err := nextPage(data, page)
		if err != nil {
			return nil, nil, err
		}

		return data, next, nil
	}
}

func nextPage(data []byte, page int) (*string, error) {
	envelope := ttdomain.PageEnvelope{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("erro ao extrair paginação da resposta: %w", err)
	}

	if envelope.PageInfo == nil || page >= envelope.PageInfo.TotalPage {
		return nil, nil
	}

	next := strconv.Itoa(page + 1)
	return &next, nil
}

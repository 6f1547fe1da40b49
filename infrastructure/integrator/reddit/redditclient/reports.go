package redditclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	rddomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

// CreateReport dispara a geração assíncrona do relatório diário por anúncio
// dentro da janela de filters e retorna o id do relatório
func (c *RedditClient) CreateReport(ctx context.Context, accessToken, adAccountID string, filters domain.InsightFilters) (string, error) {
	endpoint := fmt.Sprintf("%s/ad_accounts/%s/reports", c.cfg.Reddit.BaseURL, adAccountID)
	body := fmt.Sprintf(`{
		"data": {
			"breakdowns": ["ad_id", "date"],
			"fields": ["impressions", "spend_micros", "clicks"],
			"starts_at": %q,
			"ends_at": %q,
			"time_zone_id": "UTC"
		}
	}`, filters.Since.Format(time.DateOnly), filters.Until.Format(time.DateOnly))

	raw, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("erro ao criar relatório: %w", err)
	}

	response := &rddomain.ReportResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta de criação de relatório: %w", err)
	}

	return response.Data.ID, nil
}

// GetReport consulta o estado do relatório assíncrono
func (c *RedditClient) GetReport(ctx context.Context, accessToken, adAccountID, reportID string) (*rddomain.Report, error) {
	path := fmt.Sprintf("/ad_accounts/%s/reports/%s", adAccountID, reportID)

	raw, err := c.get(ctx, path, nil, accessToken)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar relatório: %w", err)
	}

	response := &rddomain.ReportResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do relatório: %w", err)
	}

	return &response.Data, nil
}

// ReportResultsFetch pagina as linhas do relatório concluído
func (c *RedditClient) ReportResultsFetch(accessToken, adAccountID, reportID string) pagination.FetchFunc {
	path := fmt.Sprintf("/ad_accounts/%s/reports/%s/results", adAccountID, reportID)
	return c.pageFetch(path, nil, accessToken)
}

package linkedinclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	lidomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

// CreateAnalyticsExport dispara o export assíncrono de analytics diários da
// conta, pivotado por criativo, dentro da janela de filters
func (c *LinkedInClient) CreateAnalyticsExport(ctx context.Context, accessToken, accountExternalID string, filters domain.InsightFilters) (*lidomain.Export, error) {
	body := fmt.Sprintf(`{
		"account": "urn:li:sponsoredAccount:%s",
		"pivot": "CREATIVE",
		"timeGranularity": "DAILY",
		"dateRange": {
			"start": {"year": %d, "month": %d, "day": %d},
			"end": {"year": %d, "month": %d, "day": %d}
		},
		"fields": "impressions,costInLocalCurrency,clicks"
	}`,
		accountExternalID,
		filters.Since.Year(), int(filters.Since.Month()), filters.Since.Day(),
		filters.Until.Year(), int(filters.Until.Month()), filters.Until.Day(),
	)

	endpoint := fmt.Sprintf("%s/rest/adAnalyticsExports", c.cfg.LinkedIn.BaseURL)

	raw, err := c.restRequest(ctx, http.MethodPost, endpoint, accessToken, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar export de analytics: %w", err)
	}

	export := &lidomain.Export{}
	if err := json.Unmarshal(raw, export); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do export: %w", err)
	}

	return export, nil
}

// GetAnalyticsExport consulta o estado atual do export
func (c *LinkedInClient) GetAnalyticsExport(ctx context.Context, accessToken, exportID string) (*lidomain.Export, error) {
	endpoint := fmt.Sprintf("%s/rest/adAnalyticsExports/%s", c.cfg.LinkedIn.BaseURL, exportID)

	raw, err := c.restRequest(ctx, http.MethodGet, endpoint, accessToken, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar export de analytics: %w", err)
	}

	export := &lidomain.Export{}
	if err := json.Unmarshal(raw, export); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do export: %w", err)
	}

	return export, nil
}

// AnalyticsResultsFetch pagina as linhas do export concluído
func (c *LinkedInClient) AnalyticsResultsFetch(accessToken, exportID string) pagination.FetchFunc {
	path := fmt.Sprintf("/rest/adAnalyticsExports/%s/results", exportID)
	return c.pageFetch(path, nil, accessToken)
}

// DayToTime converte a data decomposta das respostas de analytics
func DayToTime(day lidomain.DateRangeDay) time.Time {
	return time.Date(day.Year, time.Month(day.Month), day.Day, 0, 0, 0, 0, time.UTC)
}

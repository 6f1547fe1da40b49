package tiktokclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ttdomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok/domain"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

// CreateReportTask dispara a geração assíncrona do relatório diário por
// anúncio dentro da janela de filters e retorna o id da tarefa
func (c *TikTokClient) CreateReportTask(ctx context.Context, accessToken, advertiserID string, filters domain.InsightFilters) (string, error) {
	body := fmt.Sprintf(`{
		"advertiser_id": %q,
		"report_type": "BASIC",
		"data_level": "AUCTION_AD",
		"dimensions": ["ad_id", "stat_time_day"],
		"metrics": ["impressions", "spend", "clicks"],
		"start_date": %q,
		"end_date": %q
	}`, advertiserID, filters.Since.Format(time.DateOnly), filters.Until.Format(time.DateOnly))

	data, err := c.request(ctx, http.MethodPost, "/report/task/create/", nil, accessToken, body)
	if err != nil {
		return "", fmt.Errorf("erro ao criar tarefa de relatório: %w", err)
	}

	task := &ttdomain.CreateTaskData{}
	if err := json.Unmarshal(data, task); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta de criação de tarefa: %w", err)
	}

	return task.TaskID, nil
}

// CheckReportTask consulta o estado da tarefa de relatório
func (c *TikTokClient) CheckReportTask(ctx context.Context, accessToken, advertiserID, taskID string) (string, error) {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)
	params.Set("task_id", taskID)

	data, err := c.request(ctx, http.MethodGet, "/report/task/check/", params, accessToken, "")
	if err != nil {
		return "", fmt.Errorf("erro ao consultar tarefa de relatório: %w", err)
	}

	check := &ttdomain.CheckTaskData{}
	if err := json.Unmarshal(data, check); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta da tarefa: %w", err)
	}

	return check.Status, nil
}

// ReportResultsFetch pagina as linhas do relatório concluído
func (c *TikTokClient) ReportResultsFetch(accessToken, advertiserID, taskID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)
	params.Set("task_id", taskID)

	return c.pageFetch("/report/task/download/", params, accessToken)
}

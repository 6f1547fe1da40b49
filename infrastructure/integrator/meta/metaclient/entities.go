package metaclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

const pageLimit = "100"

// AdAccountsFetch pagina as contas de anúncios acessíveis pelo token
func (c *MetaClient) AdAccountsFetch(accessToken string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("fields", "id,account_id,name,currency")
	params.Set("limit", pageLimit)
	params.Set("access_token", accessToken)

	return c.pageFetch("/me/adaccounts", params)
}

// CampaignsFetch pagina as campanhas de uma conta
func (c *MetaClient) CampaignsFetch(accessToken, accountExternalID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("fields", "id,name,objective,status")
	params.Set("limit", pageLimit)
	params.Set("access_token", accessToken)

	return c.pageFetch(fmt.Sprintf("/act_%s/campaigns", accountExternalID), params)
}

// AdSetsFetch pagina os conjuntos de anúncios de uma conta
func (c *MetaClient) AdSetsFetch(accessToken, accountExternalID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("fields", "id,name,campaign_id")
	params.Set("limit", pageLimit)
	params.Set("access_token", accessToken)

	return c.pageFetch(fmt.Sprintf("/act_%s/adsets", accountExternalID), params)
}

// AdsFetch pagina os anúncios de uma conta, com o criativo embutido
func (c *MetaClient) AdsFetch(accessToken, accountExternalID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("fields", "id,name,adset_id,creative{id,name,thumbnail_url}")
	params.Set("limit", pageLimit)
	params.Set("access_token", accessToken)

	return c.pageFetch(fmt.Sprintf("/act_%s/ads", accountExternalID), params)
}

// InsightsFetch pagina os insights diários no nível de anúncio, com breakdowns
// de dispositivo, publisher e posição, dentro da janela de filters
func (c *MetaClient) InsightsFetch(accessToken, accountExternalID string, filters domain.InsightFilters) pagination.FetchFunc {
	params := url.Values{}
	params.Set("level", "ad")
	params.Set("fields", "ad_id,impressions,spend,clicks")
	params.Set("breakdowns", "device_platform,publisher_platform,platform_position")
	params.Set("time_increment", "1")
	params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		filters.Since.Format(time.DateOnly), filters.Until.Format(time.DateOnly)))
	params.Set("limit", "500")
	params.Set("access_token", accessToken)

	return c.pageFetch(fmt.Sprintf("/act_%s/insights", accountExternalID), params)
}

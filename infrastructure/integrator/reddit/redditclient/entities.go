package redditclient

import (
	"fmt"

	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

// AdAccountsFetch pagina as contas de anúncio acessíveis pelo token
func (c *RedditClient) AdAccountsFetch(accessToken string) pagination.FetchFunc {
	return c.pageFetch("/me/ad_accounts", nil, accessToken)
}

// CampaignsFetch pagina as campanhas de uma conta
func (c *RedditClient) CampaignsFetch(accessToken, adAccountID string) pagination.FetchFunc {
	return c.pageFetch(fmt.Sprintf("/ad_accounts/%s/campaigns", adAccountID), nil, accessToken)
}

// AdGroupsFetch pagina os grupos de anúncio de uma conta
func (c *RedditClient) AdGroupsFetch(accessToken, adAccountID string) pagination.FetchFunc {
	return c.pageFetch(fmt.Sprintf("/ad_accounts/%s/ad_groups", adAccountID), nil, accessToken)
}

// AdsFetch pagina os anúncios de uma conta
func (c *RedditClient) AdsFetch(accessToken, adAccountID string) pagination.FetchFunc {
	return c.pageFetch(fmt.Sprintf("/ad_accounts/%s/ads", adAccountID), nil, accessToken)
}

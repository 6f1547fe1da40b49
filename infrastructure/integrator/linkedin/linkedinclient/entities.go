package linkedinclient

import (
	"fmt"
	"net/url"

	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

// AdAccountsFetch pagina as contas de anúncios acessíveis pelo token
func (c *LinkedInClient) AdAccountsFetch(accessToken string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("q", "search")

	return c.pageFetch("/rest/adAccounts", params, accessToken)
}

// CampaignGroupsFetch pagina os grupos de campanha de uma conta
func (c *LinkedInClient) CampaignGroupsFetch(accessToken, accountExternalID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("q", "search")

	path := fmt.Sprintf("/rest/adAccounts/%s/adCampaignGroups", accountExternalID)
	return c.pageFetch(path, params, accessToken)
}

// CampaignsFetch pagina as campanhas de uma conta
func (c *LinkedInClient) CampaignsFetch(accessToken, accountExternalID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("q", "search")

	path := fmt.Sprintf("/rest/adAccounts/%s/adCampaigns", accountExternalID)
	return c.pageFetch(path, params, accessToken)
}

// CreativesFetch pagina os criativos de uma conta
func (c *LinkedInClient) CreativesFetch(accessToken, accountExternalID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("q", "criteria")

	path := fmt.Sprintf("/rest/adAccounts/%s/creatives", accountExternalID)
	return c.pageFetch(path, params, accessToken)
}

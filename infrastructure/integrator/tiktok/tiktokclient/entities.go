package tiktokclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	ttdomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok/domain"
	"github.com/vfg2006/channel-sync-api/internal/pagination"
)

// GetAdvertisers lista os anunciantes autorizados para o token
func (c *TikTokClient) GetAdvertisers(ctx context.Context, accessToken string) ([]ttdomain.AdvertiserRef, error) {
	params := url.Values{}
	params.Set("app_id", c.cfg.TikTok.AppID)
	params.Set("secret", c.cfg.TikTok.AppSecret)

	data, err := c.request(ctx, http.MethodGet, "/oauth2/advertiser/get/", params, accessToken, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anunciantes: %w", err)
	}

	list := &ttdomain.AdvertiserListData{}
	if err := json.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("erro ao decodificar lista de anunciantes: %w", err)
	}

	return list.List, nil
}

// GetAdvertiserInfo busca nome e moeda dos anunciantes informados
func (c *TikTokClient) GetAdvertiserInfo(ctx context.Context, accessToken string, advertiserIDs []string) ([]ttdomain.AdvertiserInfo, error) {
	ids, err := json.Marshal(advertiserIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar ids de anunciantes: %w", err)
	}

	params := url.Values{}
	params.Set("advertiser_ids", string(ids))

	data, err := c.request(ctx, http.MethodGet, "/advertiser/info/", params, accessToken, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar dados dos anunciantes: %w", err)
	}

	info := &ttdomain.AdvertiserInfoData{}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, fmt.Errorf("erro ao decodificar dados dos anunciantes: %w", err)
	}

	return info.List, nil
}

// CampaignsFetch pagina as campanhas de um anunciante
func (c *TikTokClient) CampaignsFetch(accessToken, advertiserID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)

	return c.pageFetch("/campaign/get/", params, accessToken)
}

// AdGroupsFetch pagina os grupos de anúncio de um anunciante
func (c *TikTokClient) AdGroupsFetch(accessToken, advertiserID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)

	return c.pageFetch("/adgroup/get/", params, accessToken)
}

// AdsFetch pagina os anúncios de um anunciante
func (c *TikTokClient) AdsFetch(accessToken, advertiserID string) pagination.FetchFunc {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)

	return c.pageFetch("/ad/get/", params, accessToken)
}

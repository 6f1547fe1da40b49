package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/meta/domain"
)

// GetAdPreview busca o iframe de pré-visualização do anúncio no formato dado
func (c *MetaClient) GetAdPreview(ctx context.Context, accessToken, adExternalID, format string) (string, error) {
	params := url.Values{}
	params.Set("ad_format", format)
	params.Set("access_token", accessToken)

	raw, err := c.get(ctx, fmt.Sprintf("/%s/previews", adExternalID), params)
	if err != nil {
		return "", fmt.Errorf("erro ao buscar pré-visualização do anúncio: %w", err)
	}

	page := &metadomain.PreviewsPage{}
	if err := json.Unmarshal(raw, page); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta de pré-visualização: %w", err)
	}

	if len(page.Data) == 0 {
		return "", fmt.Errorf("canal não retornou pré-visualização para o anúncio %s no formato %s", adExternalID, format)
	}

	return page.Data[0].Body, nil
}

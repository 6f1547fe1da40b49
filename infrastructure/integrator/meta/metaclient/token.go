package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	metadomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
)

// ExchangeCode troca o authorization code por um token de curta duração
func (c *MetaClient) ExchangeCode(ctx context.Context, code string) (*metadomain.TokenResponse, error) {
	params := url.Values{}
	params.Set("client_id", c.cfg.Meta.AppID)
	params.Set("client_secret", c.cfg.Meta.AppSecret)
	params.Set("redirect_uri", c.cfg.Meta.RedirectURL)
	params.Set("code", code)

	raw, err := c.get(ctx, "/oauth/access_token", params)
	if err != nil {
		return nil, fmt.Errorf("erro na troca de code por token: %w", err)
	}

	token := &metadomain.TokenResponse{}
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	return token, nil
}

// ExchangeLongLivedToken troca um token de curta duração por um de longa duração
func (c *MetaClient) ExchangeLongLivedToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.cfg.Meta.AppID)
	params.Set("client_secret", c.cfg.Meta.AppSecret)
	params.Set("fb_exchange_token", accessToken)

	raw, err := c.get(ctx, "/oauth/access_token", params)
	if err != nil {
		return nil, fmt.Errorf("erro na troca por token de longa duração: %w", err)
	}

	token := &metadomain.TokenResponse{}
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	return token, nil
}

// DebugToken consulta /debug_token para derivar a expiração real do token,
// que a troca de longa duração nem sempre informa
func (c *MetaClient) DebugToken(ctx context.Context, inputToken string) (*metadomain.DebugTokenData, error) {
	params := url.Values{}
	params.Set("input_token", inputToken)
	// O debug de token usa o app access token (app_id|app_secret)
	params.Set("access_token", fmt.Sprintf("%s|%s", c.cfg.Meta.AppID, c.cfg.Meta.AppSecret))

	raw, err := c.get(ctx, "/debug_token", params)
	if err != nil {
		return nil, fmt.Errorf("erro no debug de token: %w", err)
	}

	response := &metadomain.DebugTokenResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do debug de token: %w", err)
	}

	return &response.Data, nil
}

// GetMe retorna o id externo do usuário dono do token
func (c *MetaClient) GetMe(ctx context.Context, accessToken string) (string, error) {
	params := url.Values{}
	params.Set("fields", "id")
	params.Set("access_token", accessToken)

	raw, err := c.get(ctx, "/me", params)
	if err != nil {
		return "", fmt.Errorf("erro ao buscar usuário do token: %w", err)
	}

	user := &metadomain.UserResponse{}
	if err := json.Unmarshal(raw, user); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta de usuário: %w", err)
	}

	return user.ID, nil
}

// RevokePermissions revoga as permissões concedidas ao app (melhor esforço)
func (c *MetaClient) RevokePermissions(ctx context.Context, userExternalID, accessToken string) error {
	params := url.Values{}
	params.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("%s/%s/permissions?%s", c.cfg.Meta.URL, userExternalID, params.Encode())

	_, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	})
	if err != nil {
		return fmt.Errorf("erro ao revogar permissões: %w", err)
	}

	return nil
}

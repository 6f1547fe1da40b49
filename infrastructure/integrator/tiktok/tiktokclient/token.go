package tiktokclient

import (
	"context"
	"fmt"
	"net/http"

	ttdomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok/domain"
)

// ExchangeCode troca o auth_code por um access token de longa duração.
// O TikTok não informa expiração nem emite refresh token.
func (c *TikTokClient) ExchangeCode(ctx context.Context, authCode string) (*ttdomain.TokenData, error) {
	body := fmt.Sprintf(`{"app_id": %q, "secret": %q, "auth_code": %q}`,
		c.cfg.TikTok.AppID, c.cfg.TikTok.AppSecret, authCode)

	data, err := c.request(ctx, http.MethodPost, "/oauth2/access_token/", nil, "", body)
	if err != nil {
		return nil, fmt.Errorf("erro na troca de auth_code por token: %w", err)
	}

	token := &ttdomain.TokenData{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	return token, nil
}

// GetUserInfo retorna o usuário dono do token
func (c *TikTokClient) GetUserInfo(ctx context.Context, accessToken string) (*ttdomain.UserInfoData, error) {
	data, err := c.request(ctx, http.MethodGet, "/user/info/", nil, accessToken, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário do token: %w", err)
	}

	userInfo := &ttdomain.UserInfoData{}
	if err := json.Unmarshal(data, userInfo); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de usuário: %w", err)
	}

	return userInfo, nil
}

// RevokeToken revoga o access token no lado do TikTok (melhor esforço)
func (c *TikTokClient) RevokeToken(ctx context.Context, accessToken string) error {
	body := fmt.Sprintf(`{"app_id": %q, "secret": %q, "access_token": %q}`,
		c.cfg.TikTok.AppID, c.cfg.TikTok.AppSecret, accessToken)

	if _, err := c.request(ctx, http.MethodPost, "/oauth2/revoke_token/", nil, "", body); err != nil {
		return fmt.Errorf("erro ao revogar token: %w", err)
	}

	return nil
}

package redditclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	rddomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/reddit/domain"
)

// tokenRequest fala com o endpoint de token do Reddit, que exige HTTP basic
// auth com as credenciais do app em vez de client_id/client_secret no corpo
func (c *RedditClient) tokenRequest(ctx context.Context, path string, form url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s%s", c.cfg.Reddit.AuthURL, path)

	return integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.cfg.Reddit.ClientID, c.cfg.Reddit.ClientSecret)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

// ExchangeCode troca o authorization code por access e refresh tokens
func (c *RedditClient) ExchangeCode(ctx context.Context, code string) (*rddomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.Reddit.RedirectURL)

	raw, err := c.tokenRequest(ctx, "/access_token", form)
	if err != nil {
		return nil, err
	}

	token := &rddomain.TokenResponse{}
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	return token, nil
}

// RefreshToken renova o access token a partir do refresh token
func (c *RedditClient) RefreshToken(ctx context.Context, refreshToken string) (*rddomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	raw, err := c.tokenRequest(ctx, "/access_token", form)
	if err != nil {
		return nil, err
	}

	token := &rddomain.TokenResponse{}
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	return token, nil
}

// RevokeToken revoga o token no lado do Reddit (melhor esforço)
func (c *RedditClient) RevokeToken(ctx context.Context, token string) error {
	form := url.Values{}
	form.Set("token", token)
	form.Set("token_type_hint", "access_token")

	if _, err := c.tokenRequest(ctx, "/revoke_token", form); err != nil {
		return fmt.Errorf("erro ao revogar token: %w", err)
	}

	return nil
}

// GetMe resolve o id do usuário dono do token
func (c *RedditClient) GetMe(ctx context.Context, accessToken string) (*rddomain.Me, error) {
	raw, err := c.get(ctx, "/me", nil, accessToken)
	if err != nil {
		return nil, err
	}

	response := &rddomain.MeResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar dados do usuário: %w", err)
	}

	return &response.Data, nil
}

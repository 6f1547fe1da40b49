package linkedinclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	lidomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/linkedin/domain"
)

func (c *LinkedInClient) tokenRequest(ctx context.Context, form url.Values) (*lidomain.TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/accessToken", c.cfg.LinkedIn.AuthURL)

	raw, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	token := &lidomain.TokenResponse{}
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	return token, nil
}

// ExchangeCode troca o authorization code por access e refresh tokens
func (c *LinkedInClient) ExchangeCode(ctx context.Context, code string) (*lidomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.LinkedIn.ClientID)
	form.Set("client_secret", c.cfg.LinkedIn.ClientSecret)
	form.Set("redirect_uri", c.cfg.LinkedIn.RedirectURL)

	return c.tokenRequest(ctx, form)
}

// RefreshToken renova o access token a partir do refresh token
func (c *LinkedInClient) RefreshToken(ctx context.Context, refreshToken string) (*lidomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.cfg.LinkedIn.ClientID)
	form.Set("client_secret", c.cfg.LinkedIn.ClientSecret)

	return c.tokenRequest(ctx, form)
}

// GetUserInfo retorna o usuário dono do token via OpenID Connect
func (c *LinkedInClient) GetUserInfo(ctx context.Context, accessToken string) (*lidomain.UserInfo, error) {
	endpoint := fmt.Sprintf("%s/v2/userinfo", c.cfg.LinkedIn.BaseURL)

	raw, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	userInfo := &lidomain.UserInfo{}
	if err := json.Unmarshal(raw, userInfo); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de userinfo: %w", err)
	}

	return userInfo, nil
}

// RevokeToken revoga o access token no lado do LinkedIn (melhor esforço)
func (c *LinkedInClient) RevokeToken(ctx context.Context, accessToken string) error {
	form := url.Values{}
	form.Set("token", accessToken)
	form.Set("client_id", c.cfg.LinkedIn.ClientID)
	form.Set("client_secret", c.cfg.LinkedIn.ClientSecret)

	endpoint := fmt.Sprintf("%s/revoke", c.cfg.LinkedIn.AuthURL)

	_, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("erro ao revogar token: %w", err)
	}

	return nil
}

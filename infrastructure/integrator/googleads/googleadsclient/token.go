package googleadsclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	gadomain "github.com/vfg2006/channel-sync-api/infrastructure/integrator/googleads/domain"
)

func (c *GoogleAdsClient) tokenRequest(ctx context.Context, form url.Values) (*gadomain.TokenResponse, error) {
	raw, err := integrator.DoRequest(ctx, c.httpClient, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Google.TokenURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	token := &gadomain.TokenResponse{}
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	return token, nil
}

// ExchangeCode troca o authorization code por tokens, incluindo o id_token
func (c *GoogleAdsClient) ExchangeCode(ctx context.Context, code string) (*gadomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.Google.ClientID)
	form.Set("client_secret", c.cfg.Google.ClientSecret)
	form.Set("redirect_uri", c.cfg.Google.RedirectURL)

	return c.tokenRequest(ctx, form)
}

// RefreshToken renova o access token a partir do refresh token
func (c *GoogleAdsClient) RefreshToken(ctx context.Context, refreshToken string) (*gadomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.cfg.Google.ClientID)
	form.Set("client_secret", c.cfg.Google.ClientSecret)

	return c.tokenRequest(ctx, form)
}

// RevokeToken revoga o token no lado do Google (melhor esforço)
func (c *GoogleAdsClient) RevokeToken(ctx context.Context, token string) error {
	// O endpoint de revogação vive ao lado do de token
	endpoint := strings.Replace(c.cfg.Google.TokenURL, "/token", "/revoke", 1)

	form := url.Values{}
	form.Set("token", token)

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

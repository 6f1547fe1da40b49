package lidomain

// TokenResponse é a resposta da troca e da renovação de tokens do LinkedIn
type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	ExpiresIn             int64  `json:"expires_in"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in,omitempty"`
	Scope                 string `json:"scope,omitempty"`
}

// UserInfo é a resposta de /v2/userinfo (OpenID Connect)
type UserInfo struct {
	Sub string `json:"sub"`
}

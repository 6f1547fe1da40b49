package metadomain

// TokenResponse é a resposta da troca de code por token e da troca por token
// de longa duração. ExpiresIn pode vir zerado; nesse caso a expiração real é
// derivada pelo debug de token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// DebugTokenData é o bloco "data" da resposta de /debug_token
type DebugTokenData struct {
	AppID     string `json:"app_id"`
	UserID    string `json:"user_id"`
	IsValid   bool   `json:"is_valid"`
	ExpiresAt int64  `json:"expires_at"`
}

type DebugTokenResponse struct {
	Data DebugTokenData `json:"data"`
}

// UserResponse é a resposta de /me
type UserResponse struct {
	ID string `json:"id"`
}

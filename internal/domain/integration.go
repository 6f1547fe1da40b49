package domain

import "time"

// IntegrationStatus representa o estado do vínculo entre uma organização e um canal
type IntegrationStatus string

const (
	IntegrationStatusConnected    IntegrationStatus = "CONNECTED"
	IntegrationStatusErrored      IntegrationStatus = "ERRORED"
	IntegrationStatusRevoked      IntegrationStatus = "REVOKED"
	IntegrationStatusExpired      IntegrationStatus = "EXPIRED"
	IntegrationStatusExpiring     IntegrationStatus = "EXPIRING"
	IntegrationStatusNotConnected IntegrationStatus = "NOT_CONNECTED"
	IntegrationStatusComingSoon   IntegrationStatus = "COMING_SOON"
)

// Integration é o vínculo OAuth de uma organização com um canal de anúncios.
// Os tokens são armazenados criptografados; a descriptografia acontece apenas
// no momento de uso. Uma integração nunca é removida fisicamente, apenas
// transita de status.
type Integration struct {
	ID                    string            `json:"id"`
	OrganizationID        string            `json:"organization_id"`
	Type                  ChannelType       `json:"type"`
	Status                IntegrationStatus `json:"status"`
	AccessToken           string            `json:"-"`
	RefreshToken          *string           `json:"-"`
	AccessTokenExpiresAt  *time.Time        `json:"access_token_expires_at"`
	RefreshTokenExpiresAt *time.Time        `json:"refresh_token_expires_at"`
	ExternalID            string            `json:"external_id"`
	LastSyncedAt          *time.Time        `json:"last_synced_at"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// OAuthTokens é o resultado da troca de um authorization code por tokens.
// Alguns canais não informam a expiração na troca e exigem uma chamada de
// debug de token para derivá-la. IDToken só existe em canais OpenID Connect
// (Google) e nunca é persistido: serve apenas para extrair o id externo do
// usuário no momento da troca.
type OAuthTokens struct {
	AccessToken           string
	RefreshToken          *string
	AccessTokenExpiresAt  *time.Time
	RefreshTokenExpiresAt *time.Time
	IDToken               *string
}

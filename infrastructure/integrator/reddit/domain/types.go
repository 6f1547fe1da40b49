package rddomain

// Pagination é o bloco de paginação por cursor fullname da API de ads do
// Reddit; After vazio encerra a caminhada
type Pagination struct {
	After string `json:"after,omitempty"`
}

// PageEnvelope extrai só o bloco de paginação de uma página bruta
type PageEnvelope struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

type Me struct {
	ID string `json:"id"`
}

type MeResponse struct {
	Data Me `json:"data"`
}

type AdAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type AdAccountsPage struct {
	Data       []AdAccount `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Objective       string `json:"objective,omitempty"`
	EffectiveStatus string `json:"effective_status,omitempty"`
}

type CampaignsPage struct {
	Data       []Campaign  `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type AdGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CampaignID string `json:"campaign_id"`
}

type AdGroupsPage struct {
	Data       []AdGroup   `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Ad struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AdGroupID string `json:"ad_group_id"`
}

type AdsPage struct {
	Data       []Ad        `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

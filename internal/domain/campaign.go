package domain

// Entidades hierárquicas de um canal: Campaign > AdSet > Ad > Creative.
// Cada uma carrega um external_id único dentro do escopo do pai; o upsert por
// essa chave garante que re-sincronizações não criem duplicatas nem troquem a
// identidade interna.

type Campaign struct {
	ID          string  `json:"id"`
	AdAccountID string  `json:"ad_account_id"`
	ExternalID  string  `json:"external_id"`
	Name        string  `json:"name"`
	Objective   *string `json:"objective,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type AdSet struct {
	ID          string `json:"id"`
	AdAccountID string `json:"ad_account_id"`
	CampaignID  string `json:"campaign_id"`
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
}

type Ad struct {
	ID          string `json:"id"`
	AdAccountID string `json:"ad_account_id"`
	AdSetID     string `json:"ad_set_id"`
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
}

type Creative struct {
	ID           string  `json:"id"`
	AdID         string  `json:"ad_id"`
	ExternalID   string  `json:"external_id"`
	Name         *string `json:"name,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

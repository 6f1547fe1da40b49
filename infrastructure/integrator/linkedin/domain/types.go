package lidomain

// Paging é o bloco de paginação por índice da API rest do LinkedIn
type Paging struct {
	Start int `json:"start"`
	Count int `json:"count"`
	Total int `json:"total"`
}

// PageEnvelope extrai o bloco de paginação e o tamanho da página de qualquer
// resposta paginada, sem conhecer o tipo dos elementos
type PageEnvelope struct {
	Elements []interface{} `json:"elements"`
	Paging   *Paging       `json:"paging,omitempty"`
}

type AdAccount struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type AdAccountsPage struct {
	Elements []AdAccount `json:"elements"`
}

// CampaignGroup é o nível mais alto da hierarquia do LinkedIn; localmente vira
// a campanha
type CampaignGroup struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

type CampaignGroupsPage struct {
	Elements []CampaignGroup `json:"elements"`
}

// Campaign é o nível intermediário; localmente vira o conjunto de anúncios
type Campaign struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CampaignGroup string `json:"campaignGroup"`
}

type CampaignsPage struct {
	Elements []Campaign `json:"elements"`
}

// Creative é a folha da hierarquia; localmente vira o anúncio
type Creative struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Campaign string `json:"campaign"`
}

type CreativesPage struct {
	Elements []Creative `json:"elements"`
}

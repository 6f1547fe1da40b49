package gadomain

// TokenResponse é a resposta do endpoint de token do Google. IDToken é o JWT
// OpenID Connect de onde sai o id externo do usuário.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// ListAccessibleCustomersResponse lista os resource names das contas
// acessíveis ("customers/1234567890")
type ListAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

// Os resultados de googleAds:search vêm aninhados por recurso, com números
// de 64 bits serializados como strings

type Customer struct {
	ID              string `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
}

type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

type AdGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Ad struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type AdGroupAd struct {
	Ad Ad `json:"ad"`
}

type Metrics struct {
	Impressions string `json:"impressions,omitempty"`
	CostMicros  string `json:"costMicros,omitempty"`
	Clicks      string `json:"clicks,omitempty"`
}

type Segments struct {
	Date          string `json:"date,omitempty"`
	Device        string `json:"device,omitempty"`
	AdNetworkType string `json:"adNetworkType,omitempty"`
}

// SearchResult é uma linha de googleAds:search; só os recursos pedidos na
// query vêm preenchidos
type SearchResult struct {
	Customer  *Customer  `json:"customer,omitempty"`
	Campaign  *Campaign  `json:"campaign,omitempty"`
	AdGroup   *AdGroup   `json:"adGroup,omitempty"`
	AdGroupAd *AdGroupAd `json:"adGroupAd,omitempty"`
	Metrics   *Metrics   `json:"metrics,omitempty"`
	Segments  *Segments  `json:"segments,omitempty"`
}

type SearchPage struct {
	Results       []SearchResult `json:"results,omitempty"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

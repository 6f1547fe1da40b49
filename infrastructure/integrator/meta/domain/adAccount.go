package metadomain

// AdAccount é a conta de anúncios da Graph API. ID vem prefixado ("act_123");
// AccountID é o identificador numérico puro, usado como id externo local.
type AdAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
}

type AdAccountsPage struct {
	Data   []AdAccount `json:"data"`
	Paging *Paging     `json:"paging,omitempty"`
}

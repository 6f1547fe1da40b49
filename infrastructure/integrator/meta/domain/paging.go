package metadomain

// Paging é o bloco de paginação por cursor da Graph API. A presença de Next
// indica que há mais páginas; o cursor After alimenta a próxima chamada.
type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next,omitempty"`
}

// PagingEnvelope extrai só o bloco de paginação de uma página bruta
type PagingEnvelope struct {
	Paging *Paging `json:"paging,omitempty"`
}

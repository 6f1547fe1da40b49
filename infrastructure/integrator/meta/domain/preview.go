package metadomain

// Preview é um item de /previews: o corpo é o HTML do iframe de renderização
type Preview struct {
	Body string `json:"body"`
}

type PreviewsPage struct {
	Data []Preview `json:"data"`
}

package domain

// AdPreview é o iframe de pré-visualização de um anúncio, com as dimensões
// de renderização resolvidas pela tabela de formatos do canal
type AdPreview struct {
	IFrame string `json:"iframe"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PreviewPlacement é a tripla (publisher, device, position) usada na busca de
// formato. Campos nil funcionam como curinga na precedência de fallback.
type PreviewPlacement struct {
	Publisher *string
	Device    *string
	Position  *string
}

package domain

// ChannelType identifica a plataforma de anúncios de origem dos dados
type ChannelType string

const (
	ChannelTypeMeta     ChannelType = "META"
	ChannelTypeLinkedIn ChannelType = "LINKEDIN"
	ChannelTypeTikTok   ChannelType = "TIKTOK"
	ChannelTypeGoogle   ChannelType = "GOOGLE"
	ChannelTypeReddit   ChannelType = "REDDIT"
)

// AllChannelTypes lista todos os canais suportados, na ordem de exibição
var AllChannelTypes = []ChannelType{
	ChannelTypeMeta,
	ChannelTypeLinkedIn,
	ChannelTypeTikTok,
	ChannelTypeGoogle,
	ChannelTypeReddit,
}

// IsValid verifica se o tipo de canal é conhecido
func (c ChannelType) IsValid() bool {
	switch c {
	case ChannelTypeMeta, ChannelTypeLinkedIn, ChannelTypeTikTok, ChannelTypeGoogle, ChannelTypeReddit:
		return true
	}
	return false
}

func (c ChannelType) String() string {
	return string(c)
}

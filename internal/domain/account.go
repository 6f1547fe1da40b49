package domain

import "time"

// AdAccount é uma conta de anúncios do canal, vinculada 1:1 a uma integração
// pela chave única (external_id, channel_type). A identidade externa é
// imutável; nome e moeda podem mudar a cada sincronização.
type AdAccount struct {
	ID            string      `json:"id"`
	IntegrationID string      `json:"integration_id"`
	ChannelType   ChannelType `json:"channel_type"`
	ExternalID    string      `json:"external_id"`
	Name          string      `json:"name"`
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

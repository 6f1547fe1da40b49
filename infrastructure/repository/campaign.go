package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

type CampaignRepository interface {
	// SaveOrUpdate faz upsert em lote pela chave (ad_account_id, external_id)
	// e retorna o mapa external_id -> id interno
	SaveOrUpdate(campaigns []*domain.Campaign) (map[string]string, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) SaveOrUpdate(campaigns []*domain.Campaign) (map[string]string, error) {
	if len(campaigns) == 0 {
		return map[string]string{}, nil
	}

	query := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "ad_account_id", "external_id", "name", "objective", "status").
		PlaceholderFormat(squirrel.Dollar)

	for _, campaign := range campaigns {
		id := campaign.ID
		if id == "" {
			newID, err := gonanoid.New()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar id da campanha: %w", err)
			}
			id = newID
		}

		query = query.Values(
			id,
			campaign.AdAccountID,
			campaign.ExternalID,
			campaign.Name,
			campaign.Objective,
			campaign.Status,
		)
	}

	query = query.Suffix(`
			ON CONFLICT (ad_account_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				objective = EXCLUDED.objective,
				status = EXCLUDED.status,
				updated_at = NOW()
			RETURNING id, external_id
		`)

	return upsertReturningIDMap(r.conn, query)
}

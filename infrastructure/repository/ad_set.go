package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

type AdSetRepository interface {
	SaveOrUpdate(adSets []*domain.AdSet) (map[string]string, error)
}

type adSetRepository struct {
	conn *postgres.Connection
}

func NewAdSetRepository(conn *postgres.Connection) AdSetRepository {
	return &adSetRepository{
		conn: conn,
	}
}

func (r *adSetRepository) SaveOrUpdate(adSets []*domain.AdSet) (map[string]string, error) {
	if len(adSets) == 0 {
		return map[string]string{}, nil
	}

	query := squirrel.StatementBuilder.
		Insert("ad_sets").
		Columns("id", "ad_account_id", "campaign_id", "external_id", "name").
		PlaceholderFormat(squirrel.Dollar)

	for _, adSet := range adSets {
		id := adSet.ID
		if id == "" {
			newID, err := gonanoid.New()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar id do conjunto de anúncios: %w", err)
			}
			id = newID
		}

		query = query.Values(
			id,
			adSet.AdAccountID,
			adSet.CampaignID,
			adSet.ExternalID,
			adSet.Name,
		)
	}

	query = query.Suffix(`
			ON CONFLICT (ad_account_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				campaign_id = EXCLUDED.campaign_id,
				updated_at = NOW()
			RETURNING id, external_id
		`)

	return upsertReturningIDMap(r.conn, query)
}

package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

type CreativeRepository interface {
	// SaveOrUpdate faz upsert em lote pela chave (ad_id, external_id)
	SaveOrUpdate(creatives []*domain.Creative) (map[string]string, error)
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

func (r *creativeRepository) SaveOrUpdate(creatives []*domain.Creative) (map[string]string, error) {
	if len(creatives) == 0 {
		return map[string]string{}, nil
	}

	query := squirrel.StatementBuilder.
		Insert("creatives").
		Columns("id", "ad_id", "external_id", "name", "thumbnail_url").
		PlaceholderFormat(squirrel.Dollar)

	for _, creative := range creatives {
		id := creative.ID
		if id == "" {
			newID, err := gonanoid.New()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar id do criativo: %w", err)
			}
			id = newID
		}

		query = query.Values(
			id,
			creative.AdID,
			creative.ExternalID,
			creative.Name,
			creative.ThumbnailURL,
		)
	}

	query = query.Suffix(`
			ON CONFLICT (ad_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				thumbnail_url = EXCLUDED.thumbnail_url,
				updated_at = NOW()
			RETURNING id, external_id
		`)

	return upsertReturningIDMap(r.conn, query)
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

type AdRepository interface {
	GetByID(id string) (*domain.Ad, error)
	SaveOrUpdate(ads []*domain.Ad) (map[string]string, error)
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func (r *adRepository) GetByID(id string) (*domain.Ad, error) {
	query, args, err := squirrel.
		Select("a.id, a.ad_account_id, a.ad_set_id, a.external_id, a.name").
		From("ads a").
		Where(squirrel.Eq{"a.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	ad := &domain.Ad{}
	if err := row.Scan(
		&ad.ID,
		&ad.AdAccountID,
		&ad.AdSetID,
		&ad.ExternalID,
		&ad.Name,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar anúncio: %w", err)
	}

	return ad, nil
}

func (r *adRepository) SaveOrUpdate(ads []*domain.Ad) (map[string]string, error) {
	if len(ads) == 0 {
		return map[string]string{}, nil
	}

	query := squirrel.StatementBuilder.
		Insert("ads").
		Columns("id", "ad_account_id", "ad_set_id", "external_id", "name").
		PlaceholderFormat(squirrel.Dollar)

	for _, ad := range ads {
		id := ad.ID
		if id == "" {
			newID, err := gonanoid.New()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar id do anúncio: %w", err)
			}
			id = newID
		}

		query = query.Values(
			id,
			ad.AdAccountID,
			ad.AdSetID,
			ad.ExternalID,
			ad.Name,
		)
	}

	query = query.Suffix(`
			ON CONFLICT (ad_account_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				ad_set_id = EXCLUDED.ad_set_id,
				updated_at = NOW()
			RETURNING id, external_id
		`)

	return upsertReturningIDMap(r.conn, query)
}

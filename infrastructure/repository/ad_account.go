package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

const adAccountsTable = "ad_accounts aa"

type AdAccountRepository interface {
	GetByID(id string) (*domain.AdAccount, error)
	ListByIntegration(integrationID string) ([]*domain.AdAccount, error)
	// SaveOrUpdate faz upsert em lote pela chave (external_id, channel_type) e
	// retorna o mapa external_id -> id interno das contas gravadas
	SaveOrUpdate(accounts []*domain.AdAccount) (map[string]string, error)
}

type adAccountRepository struct {
	conn *postgres.Connection
}

func NewAdAccountRepository(conn *postgres.Connection) AdAccountRepository {
	return &adAccountRepository{
		conn: conn,
	}
}

func (r *adAccountRepository) GetByID(id string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.integration_id, aa.channel_type, aa.external_id, aa.name, aa.currency, aa.created_at, aa.updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	account := &domain.AdAccount{}
	if err := row.Scan(
		&account.ID,
		&account.IntegrationID,
		&account.ChannelType,
		&account.ExternalID,
		&account.Name,
		&account.Currency,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return account, nil
}

func (r *adAccountRepository) ListByIntegration(integrationID string) ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.integration_id, aa.channel_type, aa.external_id, aa.name, aa.currency, aa.created_at, aa.updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.integration_id": integrationID}).
		OrderBy("aa.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		account := &domain.AdAccount{}
		if err := rows.Scan(
			&account.ID,
			&account.IntegrationID,
			&account.ChannelType,
			&account.ExternalID,
			&account.Name,
			&account.Currency,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar conta de anúncios: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *adAccountRepository) SaveOrUpdate(accounts []*domain.AdAccount) (map[string]string, error) {
	idsByExternalID := make(map[string]string, len(accounts))

	if len(accounts) == 0 {
		return idsByExternalID, nil
	}

	query := squirrel.StatementBuilder.
		Insert("ad_accounts").
		Columns("id", "integration_id", "channel_type", "external_id", "name", "currency").
		PlaceholderFormat(squirrel.Dollar)

	for _, account := range accounts {
		id := account.ID
		if id == "" {
			newID, err := gonanoid.New()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar id da conta: %w", err)
			}
			id = newID
		}

		query = query.Values(
			id,
			account.IntegrationID,
			account.ChannelType,
			account.ExternalID,
			account.Name,
			account.Currency,
		)
	}

	// Identidade externa imutável: em conflito só nome e moeda mudam.
	// RETURNING devolve o id vigente (novo ou pré-existente) para o mapa.
	query = query.Suffix(`
			ON CONFLICT (external_id, channel_type) DO UPDATE SET
				name = EXCLUDED.name,
				currency = EXCLUDED.currency,
				updated_at = NOW()
			RETURNING id, external_id
		`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, externalID string
		if err := rows.Scan(&id, &externalID); err != nil {
			return nil, fmt.Errorf("erro ao ler ids das contas gravadas: %w", err)
		}
		idsByExternalID[externalID] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return idsByExternalID, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

const integrationsTable = "integrations i"

// uniqueViolation é o código do Postgres para violação de chave única
const uniqueViolation = pq.ErrorCode("23505")

type IntegrationRepository interface {
	GetByID(id string) (*domain.Integration, error)
	GetByOrgAndType(organizationID string, channelType domain.ChannelType) (*domain.Integration, error)
	GetByExternalID(channelType domain.ChannelType, externalID string) (*domain.Integration, error)
	ListByStatus(statuses []domain.IntegrationStatus) ([]*domain.Integration, error)
	Save(integration *domain.Integration) error
	UpdateTokens(id string, tokens *domain.OAuthTokens) error
	UpdateStatus(id string, status domain.IntegrationStatus) error
	UpdateLastSyncedAt(id string, syncedAt time.Time) error
}

type integrationRepository struct {
	conn *postgres.Connection
}

func NewIntegrationRepository(conn *postgres.Connection) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

const integrationColumns = "i.id, i.organization_id, i.type, i.status, i.access_token, i.refresh_token, " +
	"i.access_token_expires_at, i.refresh_token_expires_at, i.external_id, i.last_synced_at, i.created_at, i.updated_at"

func (r *integrationRepository) GetByID(id string) (*domain.Integration, error) {
	return r.getIntegration(squirrel.Eq{"i.id": id})
}

func (r *integrationRepository) GetByOrgAndType(organizationID string, channelType domain.ChannelType) (*domain.Integration, error) {
	return r.getIntegration(squirrel.Eq{"i.organization_id": organizationID, "i.type": channelType})
}

func (r *integrationRepository) GetByExternalID(channelType domain.ChannelType, externalID string) (*domain.Integration, error) {
	return r.getIntegration(squirrel.Eq{"i.type": channelType, "i.external_id": externalID})
}

func (r *integrationRepository) getIntegration(whereClause map[string]interface{}) (*domain.Integration, error) {
	query, args, err := squirrel.
		Select(integrationColumns).
		From(integrationsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	integration, err := r.deserializeIntegration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return integration, nil
}

func (r *integrationRepository) ListByStatus(statuses []domain.IntegrationStatus) ([]*domain.Integration, error) {
	queryBuilder := squirrel.
		Select(integrationColumns).
		From(integrationsTable).
		OrderBy("i.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(statuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"i.status": statuses})
	}

	query, args, err := queryBuilder.ToSql()
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

	integrations := make([]*domain.Integration, 0)

	for rows.Next() {
		integration := &domain.Integration{}
		if err := rows.Scan(
			&integration.ID,
			&integration.OrganizationID,
			&integration.Type,
			&integration.Status,
			&integration.AccessToken,
			&integration.RefreshToken,
			&integration.AccessTokenExpiresAt,
			&integration.RefreshTokenExpiresAt,
			&integration.ExternalID,
			&integration.LastSyncedAt,
			&integration.CreatedAt,
			&integration.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar integração: %w", err)
		}

		integrations = append(integrations, integration)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return integrations, nil
}

// Save insere uma nova integração. Violação da unicidade
// (organization_id, type) retorna domain.ErrIntegrationAlreadyExists para que
// a camada de cima possa responder com a mensagem correta ao usuário.
func (r *integrationRepository) Save(integration *domain.Integration) error {
	if integration.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("erro ao gerar id da integração: %w", err)
		}
		integration.ID = id
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("integrations").
		Columns("id", "organization_id", "type", "status", "access_token", "refresh_token",
			"access_token_expires_at", "refresh_token_expires_at", "external_id").
		Values(
			integration.ID,
			integration.OrganizationID,
			integration.Type,
			integration.Status,
			integration.AccessToken,
			integration.RefreshToken,
			integration.AccessTokenExpiresAt,
			integration.RefreshTokenExpiresAt,
			integration.ExternalID,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == uniqueViolation {
				return domain.ErrIntegrationAlreadyExists
			}
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *integrationRepository) UpdateTokens(id string, tokens *domain.OAuthTokens) error {
	queryBuilder := squirrel.
		Update("integrations").
		Set("access_token", tokens.AccessToken).
		Set("access_token_expires_at", tokens.AccessTokenExpiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if tokens.RefreshToken != nil {
		queryBuilder = queryBuilder.
			Set("refresh_token", *tokens.RefreshToken).
			Set("refresh_token_expires_at", tokens.RefreshTokenExpiresAt)
	}

	return r.execUpdate(queryBuilder)
}

func (r *integrationRepository) UpdateStatus(id string, status domain.IntegrationStatus) error {
	queryBuilder := squirrel.
		Update("integrations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execUpdate(queryBuilder)
}

func (r *integrationRepository) UpdateLastSyncedAt(id string, syncedAt time.Time) error {
	queryBuilder := squirrel.
		Update("integrations").
		Set("last_synced_at", syncedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execUpdate(queryBuilder)
}

func (r *integrationRepository) execUpdate(queryBuilder squirrel.UpdateBuilder) error {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrIntegrationNotFound
	}

	return nil
}

func (r *integrationRepository) deserializeIntegration(row *sql.Row) (*domain.Integration, error) {
	integration := &domain.Integration{}

	if err := row.Scan(
		&integration.ID,
		&integration.OrganizationID,
		&integration.Type,
		&integration.Status,
		&integration.AccessToken,
		&integration.RefreshToken,
		&integration.AccessTokenExpiresAt,
		&integration.RefreshTokenExpiresAt,
		&integration.ExternalID,
		&integration.LastSyncedAt,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return integration, nil
}

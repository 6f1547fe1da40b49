package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

// insightInsertChunkSize limita o número de linhas por INSERT para não
// estourar o limite de parâmetros do protocolo do Postgres
const insightInsertChunkSize = 1000

type InsightRepository interface {
	// DeleteByAccountAndWindow remove todas as linhas da conta dentro da
	// janela [since, until]; é o passo de limpeza do refresh janelado
	DeleteByAccountAndWindow(adAccountID string, since, until time.Time) (int64, error)
	CreateMany(insights []*domain.Insight) error
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

func (r *insightRepository) DeleteByAccountAndWindow(adAccountID string, since, until time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("insights").
		Where(squirrel.Eq{"ad_account_id": adAccountID}).
		Where(squirrel.GtOrEq{"date": since.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"date": until.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// CreateMany insere as linhas de insight em lotes. A janela já foi limpa pelo
// DeleteByAccountAndWindow, então o insert não usa upsert: uma colisão de
// chave aqui é um erro real de reconciliação e deve falhar alto.
func (r *insightRepository) CreateMany(insights []*domain.Insight) error {
	for start := 0; start < len(insights); start += insightInsertChunkSize {
		end := start + insightInsertChunkSize
		if end > len(insights) {
			end = len(insights)
		}

		if err := r.createChunk(insights[start:end]); err != nil {
			return err
		}
	}

	return nil
}

func (r *insightRepository) createChunk(insights []*domain.Insight) error {
	if len(insights) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("insights").
		Columns("ad_account_id", "ad_id", "date", "device", "publisher", "position", "impressions", "spend_cents", "clicks").
		PlaceholderFormat(squirrel.Dollar)

	for _, insight := range insights {
		if insight.AdID == "" {
			return domain.ErrAdMappingIncomplete
		}

		query = query.Values(
			insight.AdAccountID,
			insight.AdID,
			insight.Date.Format("2006-01-02"),
			insight.Device,
			insight.Publisher,
			insight.Position,
			insight.Impressions,
			insight.SpendCents,
			insight.Clicks,
		)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
)

// upsertReturningIDMap executa um insert em lote com suffix
// "ON CONFLICT ... RETURNING id, external_id" e devolve o mapa
// external_id -> id interno. É o bloco comum dos upserts hierárquicos.
func upsertReturningIDMap(conn *postgres.Connection, query squirrel.InsertBuilder) (map[string]string, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := conn.Query(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	idsByExternalID := make(map[string]string)

	for rows.Next() {
		var id, externalID string
		if err := rows.Scan(&id, &externalID); err != nil {
			return nil, fmt.Errorf("erro ao ler ids gravados: %w", err)
		}
		idsByExternalID[externalID] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return idsByExternalID, nil
}

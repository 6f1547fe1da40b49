package domain

import "time"

// Insight é a linha de fato diária de um anúncio, chaveada por
// (ad_id, date, device, publisher, position). O gasto é armazenado em
// centavos inteiros para evitar acumulação de erro de ponto flutuante.
type Insight struct {
	AdAccountID string    `json:"ad_account_id"`
	AdID        string    `json:"ad_id"`
	Date        time.Time `json:"date"`
	Device      string    `json:"device"`
	Publisher   string    `json:"publisher"`
	Position    string    `json:"position"`
	Impressions int64     `json:"impressions"`
	SpendCents  int64     `json:"spend_cents"`
	Clicks      *int64    `json:"clicks,omitempty"`
}

// InsightFilters delimita a janela de datas de uma sincronização de insights.
// Em uma sincronização inicial a janela é derivada do lookback padrão.
type InsightFilters struct {
	Since   time.Time
	Until   time.Time
	Initial bool
}

// DefaultInitialLookbackDays é a janela retroativa usada na primeira
// sincronização de uma conta, quando ainda não há dados locais
const DefaultInitialLookbackDays = 90

// NewInsightFilters monta a janela de sincronização. Para sincronizações
// iniciais ignora o lookback informado e usa a janela retroativa padrão.
func NewInsightFilters(initial bool, lookbackDays int) InsightFilters {
	until := time.Now().Truncate(24 * time.Hour)

	days := lookbackDays
	if initial {
		days = DefaultInitialLookbackDays
	}

	return InsightFilters{
		Since:   until.AddDate(0, 0, -days),
		Until:   until,
		Initial: initial,
	}
}

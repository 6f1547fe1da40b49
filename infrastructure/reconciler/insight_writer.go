package reconciler

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/infrastructure/repository"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

// InsightWriter aplica o refresh janelado da tabela de fatos: apaga a janela
// de datas da conta e insere as linhas recém-buscadas. Dentro da janela os
// dados passam a ser exatamente o que a última busca retornou; linhas fora da
// janela não são tocadas.
type InsightWriter struct {
	insightRepo repository.InsightRepository
}

func NewInsightWriter(insightRepo repository.InsightRepository) *InsightWriter {
	return &InsightWriter{insightRepo: insightRepo}
}

// ClearWindow apaga as linhas existentes da conta dentro da janela
func (w *InsightWriter) ClearWindow(adAccountID string, filters domain.InsightFilters) error {
	deleted, err := w.insightRepo.DeleteByAccountAndWindow(adAccountID, filters.Since, filters.Until)
	if err != nil {
		return errors.Wrap(err, "erro ao limpar janela de insights")
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": adAccountID,
		"since":         filters.Since.Format("2006-01-02"),
		"until":         filters.Until.Format("2006-01-02"),
		"deleted":       deleted,
	}).Info("Janela de insights limpa para refresh")

	return nil
}

// Write insere as linhas novas; assume que a janela já foi limpa
func (w *InsightWriter) Write(insights []*domain.Insight) error {
	if len(insights) == 0 {
		return nil
	}

	if err := w.insightRepo.CreateMany(insights); err != nil {
		return errors.Wrap(err, "erro ao inserir insights")
	}

	return nil
}

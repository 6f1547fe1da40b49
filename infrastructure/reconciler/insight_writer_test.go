package reconciler

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/channel-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestClearWindow(t *testing.T) {
	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	filters := domain.InsightFilters{Since: since, Until: until}

	t.Run("apaga exatamente a janela da conta informada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		insightRepo := mocks.NewMockInsightRepository(ctrl)
		writer := NewInsightWriter(insightRepo)

		insightRepo.EXPECT().
			DeleteByAccountAndWindow("acc-1", since, until).
			Return(int64(42), nil)

		err := writer.ClearWindow("acc-1", filters)
		assert.NoError(t, err)
	})

	t.Run("propaga erro do banco com contexto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		insightRepo := mocks.NewMockInsightRepository(ctrl)
		writer := NewInsightWriter(insightRepo)

		insightRepo.EXPECT().
			DeleteByAccountAndWindow("acc-1", since, until).
			Return(int64(0), errors.New("deadlock"))

		err := writer.ClearWindow("acc-1", filters)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao limpar janela de insights")
	})
}

func TestWrite(t *testing.T) {
	t.Run("insere as linhas buscadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		insightRepo := mocks.NewMockInsightRepository(ctrl)
		writer := NewInsightWriter(insightRepo)

		insights := []*domain.Insight{
			{AdAccountID: "acc-1", AdID: "ad-1", Impressions: 100, SpendCents: 2550},
		}

		insightRepo.EXPECT().CreateMany(insights).Return(nil)

		assert.NoError(t, writer.Write(insights))
	})

	t.Run("lote vazio não toca o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		insightRepo := mocks.NewMockInsightRepository(ctrl)
		writer := NewInsightWriter(insightRepo)

		assert.NoError(t, writer.Write(nil))
	})
}

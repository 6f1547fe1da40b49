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

func newTestReconciler(ctrl *gomock.Controller) (*Reconciler, *mocks.MockAdAccountRepository, *mocks.MockCampaignRepository, *mocks.MockAdRepository) {
	accountRepo := mocks.NewMockAdAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	adSetRepo := mocks.NewMockAdSetRepository(ctrl)
	adRepo := mocks.NewMockAdRepository(ctrl)
	creativeRepo := mocks.NewMockCreativeRepository(ctrl)

	rec := New(accountRepo, campaignRepo, adSetRepo, adRepo, creativeRepo)

	return rec, accountRepo, campaignRepo, adRepo
}

func TestSaveAccounts(t *testing.T) {
	t.Run("resolve os ids internos das contas pelo external_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec, accountRepo, _, _ := newTestReconciler(ctrl)

		accounts := []*domain.AdAccount{
			{ExternalID: "ext-1", Name: "Conta 1"},
			{ExternalID: "ext-2", Name: "Conta 2"},
		}

		accountRepo.EXPECT().
			SaveOrUpdate(accounts).
			Return(map[string]string{"ext-1": "id-1", "ext-2": "id-2"}, nil)

		saved, err := rec.SaveAccounts(accounts)
		require.NoError(t, err)

		assert.Equal(t, "id-1", saved[0].ID)
		assert.Equal(t, "id-2", saved[1].ID)
	})

	t.Run("falha quando o upsert não retorna o id de uma conta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec, accountRepo, _, _ := newTestReconciler(ctrl)

		accounts := []*domain.AdAccount{{ExternalID: "ext-1"}}

		accountRepo.EXPECT().
			SaveOrUpdate(accounts).
			Return(map[string]string{}, nil)

		_, err := rec.SaveAccounts(accounts)
		assert.Error(t, err)
	})
}

func TestSaveCampaigns(t *testing.T) {
	t.Run("repetir o upsert com os mesmos dados devolve os mesmos ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec, _, campaignRepo, _ := newTestReconciler(ctrl)

		campaigns := []*domain.Campaign{
			{AdAccountID: "acc-1", ExternalID: "camp-1", Name: "Campanha"},
		}

		idMap := map[string]string{"camp-1": "id-camp-1"}
		campaignRepo.EXPECT().SaveOrUpdate(campaigns).Return(idMap, nil).Times(2)

		first, err := rec.SaveCampaigns(campaigns)
		require.NoError(t, err)

		second, err := rec.SaveCampaigns(campaigns)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("propaga erro do banco com contexto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec, _, campaignRepo, _ := newTestReconciler(ctrl)

		campaignRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			Return(nil, errors.New("conexão recusada"))

		_, err := rec.SaveCampaigns([]*domain.Campaign{{ExternalID: "camp-1"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao gravar campanhas")
	})
}

func TestResolveAdIDs(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("troca o external_id pelo id interno em todas as linhas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec, _, _, _ := newTestReconciler(ctrl)

		insights := []*domain.Insight{
			{AdID: "ext-ad-1", Date: date, Impressions: 10},
			{AdID: "ext-ad-2", Date: date, Impressions: 20},
		}

		err := rec.ResolveAdIDs(insights, map[string]string{
			"ext-ad-1": "ad-1",
			"ext-ad-2": "ad-2",
		})
		require.NoError(t, err)

		assert.Equal(t, "ad-1", insights[0].AdID)
		assert.Equal(t, "ad-2", insights[1].AdID)
	})

	t.Run("falha alto quando uma linha referencia anúncio sem mapeamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec, _, _, _ := newTestReconciler(ctrl)

		insights := []*domain.Insight{
			{AdID: "ext-ad-desconhecido", Date: date},
		}

		err := rec.ResolveAdIDs(insights, map[string]string{"ext-ad-1": "ad-1"})
		assert.ErrorIs(t, err, domain.ErrAdMappingIncomplete)
	})
}

package reconciler

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/infrastructure/repository"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

// Reconciler grava as entidades hierárquicas de um canal e mantém os mapas
// external_id -> id interno usados logo em seguida para resolver as chaves
// estrangeiras dos insights. Todos os passos são upserts idempotentes: repetir
// uma sincronização com os mesmos dados externos não cria duplicatas nem
// troca identidades.
type Reconciler struct {
	accountRepo  repository.AdAccountRepository
	campaignRepo repository.CampaignRepository
	adSetRepo    repository.AdSetRepository
	adRepo       repository.AdRepository
	creativeRepo repository.CreativeRepository
}

func New(
	accountRepo repository.AdAccountRepository,
	campaignRepo repository.CampaignRepository,
	adSetRepo repository.AdSetRepository,
	adRepo repository.AdRepository,
	creativeRepo repository.CreativeRepository,
) *Reconciler {
	return &Reconciler{
		accountRepo:  accountRepo,
		campaignRepo: campaignRepo,
		adSetRepo:    adSetRepo,
		adRepo:       adRepo,
		creativeRepo: creativeRepo,
	}
}

// SaveAccounts faz upsert das contas pela chave (external_id, channel_type) e
// retorna as contas com os ids internos resolvidos
func (r *Reconciler) SaveAccounts(accounts []*domain.AdAccount) ([]*domain.AdAccount, error) {
	idsByExternalID, err := r.accountRepo.SaveOrUpdate(accounts)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gravar contas de anúncios")
	}

	for _, account := range accounts {
		id, ok := idsByExternalID[account.ExternalID]
		if !ok {
			return nil, errors.Errorf("conta %s não retornou id interno no upsert", account.ExternalID)
		}
		account.ID = id
	}

	return accounts, nil
}

// ListAccounts retorna as contas já reconciliadas da integração
func (r *Reconciler) ListAccounts(integrationID string) ([]*domain.AdAccount, error) {
	accounts, err := r.accountRepo.ListByIntegration(integrationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar contas da integração")
	}
	return accounts, nil
}

// SaveCampaigns retorna o mapa external_id -> id interno das campanhas
func (r *Reconciler) SaveCampaigns(campaigns []*domain.Campaign) (map[string]string, error) {
	ids, err := r.campaignRepo.SaveOrUpdate(campaigns)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gravar campanhas")
	}
	return ids, nil
}

func (r *Reconciler) SaveAdSets(adSets []*domain.AdSet) (map[string]string, error) {
	ids, err := r.adSetRepo.SaveOrUpdate(adSets)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gravar conjuntos de anúncios")
	}
	return ids, nil
}

func (r *Reconciler) SaveAds(ads []*domain.Ad) (map[string]string, error) {
	ids, err := r.adRepo.SaveOrUpdate(ads)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gravar anúncios")
	}
	return ids, nil
}

func (r *Reconciler) SaveCreatives(creatives []*domain.Creative) (map[string]string, error) {
	ids, err := r.creativeRepo.SaveOrUpdate(creatives)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gravar criativos")
	}
	return ids, nil
}

// ResolveAdIDs troca o external_id de cada insight pelo id interno do
// anúncio. Um insight sem mapeamento falha alto: descartar linhas em silêncio
// mascararia uma reconciliação incompleta.
func (r *Reconciler) ResolveAdIDs(insights []*domain.Insight, adIDsByExternalID map[string]string) error {
	for _, insight := range insights {
		internalID, ok := adIDsByExternalID[insight.AdID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"ad_external_id": insight.AdID,
				"date":           insight.Date.Format("2006-01-02"),
			}).Error("Insight referencia anúncio sem mapeamento interno")
			return domain.ErrAdMappingIncomplete
		}
		insight.AdID = internalID
	}

	return nil
}

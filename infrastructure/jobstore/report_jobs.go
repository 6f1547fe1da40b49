package jobstore

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReportJobTracker é a visão tipada do Store para jobs de relatório: um
// conjunto por canal, membros serializados como JSON de domain.ReportJob
type ReportJobTracker struct {
	store Store
}

func NewReportJobTracker(store Store) *ReportJobTracker {
	return &ReportJobTracker{store: store}
}

func reportJobsKey(channelType domain.ChannelType) string {
	return fmt.Sprintf("report-jobs:%s", channelType)
}

// Add registra o job no conjunto do canal com o TTL informado
func (t *ReportJobTracker) Add(ctx context.Context, job *domain.ReportJob, ttl time.Duration) error {
	member, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("erro ao serializar report job: %w", err)
	}

	return t.store.SetAdd(ctx, reportJobsKey(job.ChannelType), string(member), ttl)
}

// Remove tira o job do conjunto e informa se esta chamada foi a responsável
// pela remoção. Como o membro é removido por valor exato, duas instâncias
// observando o mesmo job nunca recebem true ao mesmo tempo — é esse retorno
// que garante o processamento único do SUCCESS.
func (t *ReportJobTracker) Remove(ctx context.Context, job *domain.ReportJob) (bool, error) {
	member, err := json.Marshal(job)
	if err != nil {
		return false, fmt.Errorf("erro ao serializar report job: %w", err)
	}

	return t.store.SetRemove(ctx, reportJobsKey(job.ChannelType), string(member))
}

// List retorna os jobs não expirados do canal
func (t *ReportJobTracker) List(ctx context.Context, channelType domain.ChannelType) ([]*domain.ReportJob, error) {
	members, err := t.store.SetGetAll(ctx, reportJobsKey(channelType))
	if err != nil {
		return nil, err
	}

	jobs := make([]*domain.ReportJob, 0, len(members))
	for _, member := range members {
		job := &domain.ReportJob{}
		if err := json.Unmarshal([]byte(member), job); err != nil {
			return nil, fmt.Errorf("erro ao deserializar report job do conjunto: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

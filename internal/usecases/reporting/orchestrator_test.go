package reporting

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/channel-sync-api/infrastructure/dispatch"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	integratormocks "github.com/vfg2006/channel-sync-api/infrastructure/integrator/mocks"
	"github.com/vfg2006/channel-sync-api/infrastructure/jobstore"
	repomocks "github.com/vfg2006/channel-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/pkg/crypto"
	"go.uber.org/mock/gomock"
)

// memoryStore é um Store em memória com a mesma semântica do Redis: remoção
// por valor exato informando se o membro existia, e expiração por membro
type memoryStore struct {
	mu      sync.Mutex
	sets    map[string]map[string]time.Time
	entries map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sets:    make(map[string]map[string]time.Time),
		entries: make(map[string]string),
	}
}

func (s *memoryStore) SetAdd(_ context.Context, key, member string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sets[key] == nil {
		s.sets[key] = make(map[string]time.Time)
	}
	s.sets[key][member] = time.Now().Add(ttl)
	return nil
}

func (s *memoryStore) SetRemove(_ context.Context, key, member string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.sets[key]
	if !ok {
		return false, nil
	}
	if _, ok := members[member]; !ok {
		return false, nil
	}
	delete(members, member)
	return true, nil
}

func (s *memoryStore) SetGetAll(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result := make([]string, 0)
	for member, expiresAt := range s.sets[key] {
		if expiresAt.After(now) {
			result = append(result, member)
		} else {
			delete(s.sets[key], member)
		}
	}
	return result, nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

// recordingDispatcher captura as mensagens despachadas
type recordingDispatcher struct {
	mu       sync.Mutex
	messages []dispatch.Message
}

func (d *recordingDispatcher) Dispatch(_ context.Context, msg dispatch.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	return nil
}

func (d *recordingDispatcher) DispatchBatch(ctx context.Context, msgs []dispatch.Message) error {
	for _, msg := range msgs {
		if err := d.Dispatch(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (d *recordingDispatcher) dispatched() []dispatch.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]dispatch.Message{}, d.messages...)
}

type orchestratorFixture struct {
	orchestrator *Orchestrator
	tracker      *jobstore.ReportJobTracker
	dispatcher   *recordingDispatcher
	channel      *integratormocks.MockChannel
	cipher       *crypto.Cipher
}

func newOrchestratorFixture(t *testing.T, ctrl *gomock.Controller, maxProcessing int) (*orchestratorFixture, *repomocks.MockIntegrationRepository, *repomocks.MockAdAccountRepository) {
	t.Helper()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	cipher, err := crypto.NewCipher(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.ReportPoller.MaxProcessingPerChannel = maxProcessing
	cfg.ReportPoller.SuccessMarkerTTLSeconds = 120
	cfg.ReportPoller.JobTTLHours = 12

	channel := integratormocks.NewMockChannel(ctrl)
	channel.EXPECT().Type().Return(domain.ChannelTypeLinkedIn).AnyTimes()

	integrationRepo := repomocks.NewMockIntegrationRepository(ctrl)
	adAccountRepo := repomocks.NewMockAdAccountRepository(ctrl)

	tracker := jobstore.NewReportJobTracker(newMemoryStore())
	dispatcher := &recordingDispatcher{}

	orchestrator := NewOrchestrator(cfg, integrator.NewRegistry(channel), tracker, integrationRepo, adAccountRepo, cipher)
	orchestrator.SetDispatcher(dispatcher)

	return &orchestratorFixture{
		orchestrator: orchestrator,
		tracker:      tracker,
		dispatcher:   dispatcher,
		channel:      channel,
		cipher:       cipher,
	}, integrationRepo, adAccountRepo
}

func (f *orchestratorFixture) expectJobContext(t *testing.T, integrationRepo *repomocks.MockIntegrationRepository, adAccountRepo *repomocks.MockAdAccountRepository) {
	t.Helper()

	encrypted, err := f.cipher.Encrypt("token-em-claro")
	require.NoError(t, err)

	adAccountRepo.EXPECT().
		GetByID("acc-1").
		Return(&domain.AdAccount{ID: "acc-1", IntegrationID: "int-1", ExternalID: "123"}, nil).
		AnyTimes()

	integrationRepo.EXPECT().
		GetByID("int-1").
		DoAndReturn(func(string) (*domain.Integration, error) {
			return &domain.Integration{
				ID:          "int-1",
				Type:        domain.ChannelTypeLinkedIn,
				Status:      domain.IntegrationStatusConnected,
				AccessToken: encrypted,
			}, nil
		}).
		AnyTimes()
}

func TestTick_SucessoProcessadoExatamenteUmaVez(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture, integrationRepo, adAccountRepo := newOrchestratorFixture(t, ctrl, 5)
	fixture.expectJobContext(t, integrationRepo, adAccountRepo)

	ctx := context.Background()

	job := &domain.ReportJob{
		ChannelType: domain.ChannelTypeLinkedIn,
		AdAccountID: "acc-1",
		TaskID:      "task-1",
		Status:      domain.ReportJobStatusProcessing,
		Initial:     true,
	}
	require.NoError(t, fixture.orchestrator.Track(ctx, job))

	// O canal reporta SUCCESS em todas as consultas; mesmo assim o
	// processamento deve ser despachado uma única vez
	fixture.channel.EXPECT().
		GetReportStatus(gomock.Any(), gomock.Any(), gomock.Any(), "task-1").
		Return(domain.ReportJobStatusSuccess, nil).
		AnyTimes()

	require.NoError(t, fixture.orchestrator.Tick(ctx))
	require.NoError(t, fixture.orchestrator.Tick(ctx))
	require.NoError(t, fixture.orchestrator.Tick(ctx))

	dispatched := fixture.dispatcher.dispatched()
	require.Len(t, dispatched, 1)
	assert.Equal(t, "task-1", dispatched[0].TaskID)
	assert.Equal(t, "acc-1", dispatched[0].AdAccountID)
	assert.True(t, dispatched[0].Initial)

	// O marcador SUCCESS permanece no conjunto dentro do TTL curto
	jobs, err := fixture.tracker.List(ctx, domain.ChannelTypeLinkedIn)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.ReportJobStatusSuccess, jobs[0].Status)
}

func TestTick_PromocaoRespeitaTetoPorCanal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture, _, _ := newOrchestratorFixture(t, ctrl, 1)

	ctx := context.Background()

	for _, taskID := range []string{"task-1", "task-2", "task-3"} {
		require.NoError(t, fixture.orchestrator.Track(ctx, &domain.ReportJob{
			ChannelType: domain.ChannelTypeLinkedIn,
			AdAccountID: "acc-1",
			TaskID:      taskID,
			Status:      domain.ReportJobStatusQueuing,
		}))
	}

	require.NoError(t, fixture.orchestrator.Tick(ctx))

	jobs, err := fixture.tracker.List(ctx, domain.ChannelTypeLinkedIn)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	processing := 0
	for _, job := range jobs {
		if job.Status == domain.ReportJobStatusProcessing {
			processing++
		}
	}
	assert.Equal(t, 1, processing, "apenas um job deve estar em processamento com teto 1")
}

func TestTick_FalhaRemoveSemRetentativa(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture, integrationRepo, adAccountRepo := newOrchestratorFixture(t, ctrl, 5)
	fixture.expectJobContext(t, integrationRepo, adAccountRepo)

	ctx := context.Background()

	require.NoError(t, fixture.orchestrator.Track(ctx, &domain.ReportJob{
		ChannelType: domain.ChannelTypeLinkedIn,
		AdAccountID: "acc-1",
		TaskID:      "task-falho",
		Status:      domain.ReportJobStatusProcessing,
	}))

	fixture.channel.EXPECT().
		GetReportStatus(gomock.Any(), gomock.Any(), gomock.Any(), "task-falho").
		Return(domain.ReportJobStatusFailed, nil)

	require.NoError(t, fixture.orchestrator.Tick(ctx))

	jobs, err := fixture.tracker.List(ctx, domain.ChannelTypeLinkedIn)
	require.NoError(t, err)
	assert.Empty(t, jobs, "job falho sai do acompanhamento sem retentativa")
	assert.Empty(t, fixture.dispatcher.dispatched())
}

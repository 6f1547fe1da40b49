package integrator

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

// ErrChannelNotRegistered indica que o tipo de canal não tem adapter registrado
var ErrChannelNotRegistered = errors.New("canal não registrado")

// Channel é o contrato polimórfico de um canal de anúncios. Os chamadores
// dependem apenas desta interface; os adapters concretos não compartilham
// estado entre si, apenas o contrato.
//
// Os tokens dentro de integration chegam já descriptografados: quem carrega a
// integração do banco é responsável por abrir os tokens antes de chamar o
// adapter.
type Channel interface {
	Type() domain.ChannelType

	// GenerateAuthURL monta a URL de autorização OAuth do canal
	GenerateAuthURL(state string) string

	// ExchangeCodeForTokens troca o authorization code por tokens de acesso
	ExchangeCodeForTokens(ctx context.Context, code string) (*domain.OAuthTokens, error)

	// RefreshTokens renova o access token a partir do refresh token. Canais
	// sem refresh token retornam domain.ErrTokenRefreshNotSupported.
	RefreshTokens(ctx context.Context, refreshToken string) (*domain.OAuthTokens, error)

	// GetUserID extrai o id externo do usuário dono dos tokens
	GetUserID(ctx context.Context, tokens *domain.OAuthTokens) (string, error)

	// DeAuthorize revoga o acesso no lado do canal (melhor esforço)
	DeAuthorize(ctx context.Context, integration *domain.Integration) error

	// SaveAdAccounts busca e persiste as contas de anúncios da integração
	SaveAdAccounts(ctx context.Context, integration *domain.Integration) ([]*domain.AdAccount, error)

	// GetChannelData sincroniza a hierarquia de entidades das contas da
	// integração. Canais sem relatório assíncrono também sincronizam os
	// insights aqui; os demais deixam os insights para o fluxo de relatórios.
	GetChannelData(ctx context.Context, integration *domain.Integration, initial bool) error

	// GetAdPreview resolve o iframe de pré-visualização de um anúncio.
	// Canais sem pré-visualização retornam domain.ErrPreviewNotSupported.
	GetAdPreview(ctx context.Context, integration *domain.Integration, adExternalID string, placement domain.PreviewPlacement) (*domain.AdPreview, error)

	// RunAdInsightReport dispara a geração assíncrona de um relatório de
	// insights no lado do canal e retorna o id da tarefa. Canais com
	// sincronização inline retornam domain.ErrReportsNotSupported.
	RunAdInsightReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, filters domain.InsightFilters) (string, error)

	// GetReportStatus consulta o estado da tarefa de relatório
	GetReportStatus(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, taskID string) (domain.ReportJobStatus, error)

	// ProcessReport baixa o relatório pronto e grava os insights da conta
	ProcessReport(ctx context.Context, integration *domain.Integration, account *domain.AdAccount, taskID string, initial bool) error

	// SignOutCallback valida o payload do webhook de desautorização e retorna
	// o id externo do usuário que revogou o acesso
	SignOutCallback(payload string) (string, error)

	// AuthErrorMessages lista as mensagens conhecidas de token morto do canal,
	// usadas pela classificação de erros de autenticação
	AuthErrorMessages() []string
}

// IsAuthError informa se o erro corresponde a uma mensagem conhecida de token
// morto do canal. A comparação é por substring porque os canais embrulham a
// mensagem em envelopes variados.
func IsAuthError(channel Channel, err error) bool {
	if err == nil {
		return false
	}

	message := err.Error()
	for _, authMessage := range channel.AuthErrorMessages() {
		if strings.Contains(message, authMessage) {
			return true
		}
	}

	return false
}

// Registry resolve o tipo de integração para a instância do adapter
type Registry struct {
	channels map[domain.ChannelType]Channel
}

func NewRegistry(channels ...Channel) *Registry {
	registry := &Registry{
		channels: make(map[domain.ChannelType]Channel, len(channels)),
	}

	for _, channel := range channels {
		registry.channels[channel.Type()] = channel
	}

	return registry
}

func (r *Registry) Get(channelType domain.ChannelType) (Channel, error) {
	channel, ok := r.channels[channelType]
	if !ok {
		return nil, errors.Wrapf(ErrChannelNotRegistered, "canal %s", channelType)
	}
	return channel, nil
}

// All retorna os adapters registrados na ordem canônica dos canais
func (r *Registry) All() []Channel {
	channels := make([]Channel, 0, len(r.channels))
	for _, channelType := range domain.AllChannelTypes {
		if channel, ok := r.channels[channelType]; ok {
			channels = append(channels, channel)
		}
	}
	return channels
}

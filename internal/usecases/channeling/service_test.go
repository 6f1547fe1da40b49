package channeling

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	integratormocks "github.com/vfg2006/channel-sync-api/infrastructure/integrator/mocks"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	repomocks "github.com/vfg2006/channel-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/pkg/crypto"
	"go.uber.org/mock/gomock"
)

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	cipher, err := crypto.NewCipher(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	return cipher
}

func newTestService(t *testing.T, ctrl *gomock.Controller, channel *integratormocks.MockChannel) (*Service, *repomocks.MockIntegrationRepository, *repomocks.MockAdAccountRepository) {
	t.Helper()

	integrationRepo := repomocks.NewMockIntegrationRepository(ctrl)
	adAccountRepo := repomocks.NewMockAdAccountRepository(ctrl)

	channel.EXPECT().Type().Return(domain.ChannelTypeMeta).AnyTimes()

	service := NewService(
		&config.Config{},
		integrationRepo,
		adAccountRepo,
		repomocks.NewMockAdRepository(ctrl),
		integrator.NewRegistry(channel),
		testCipher(t),
		nil,
		nil,
	)

	return service, integrationRepo, adAccountRepo
}

func TestClassifyChannelError(t *testing.T) {
	authMessages := []string{
		"Error validating access token: The session has been invalidated",
		"The user has not authorized application",
	}

	tests := []struct {
		name        string
		err         error
		marksErrored bool
	}{
		{
			name:         "mensagem conhecida de token morto marca a integração",
			err:          errors.New("Error validating access token: The session has been invalidated because the user changed their password."),
			marksErrored: true,
		},
		{
			name:         "mensagem embrulhada em outro erro também classifica",
			err:          errors.Wrap(errors.New("The user has not authorized application"), "erro ao buscar campanhas"),
			marksErrored: true,
		},
		{
			name:         "erro transitório não muda o estado da integração",
			err:          errors.New("connection reset by peer"),
			marksErrored: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			channel := integratormocks.NewMockChannel(ctrl)
			service, integrationRepo, _ := newTestService(t, ctrl, channel)

			channel.EXPECT().AuthErrorMessages().Return(authMessages)

			if tt.marksErrored {
				integrationRepo.EXPECT().
					UpdateStatus("int-1", domain.IntegrationStatusErrored).
					Return(nil)
			}

			service.ClassifyChannelError("int-1", domain.ChannelTypeMeta, tt.err)
		})
	}
}

func TestHandleSignOut(t *testing.T) {
	t.Run("payload válido revoga a integração do usuário", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		channel := integratormocks.NewMockChannel(ctrl)
		service, integrationRepo, _ := newTestService(t, ctrl, channel)

		channel.EXPECT().SignOutCallback("payload-assinado").Return("user-42", nil)

		integrationRepo.EXPECT().
			GetByExternalID(domain.ChannelTypeMeta, "user-42").
			Return(&domain.Integration{ID: "int-1", Type: domain.ChannelTypeMeta}, nil)

		integrationRepo.EXPECT().
			UpdateStatus("int-1", domain.IntegrationStatusRevoked).
			Return(nil)

		err := service.HandleSignOut(context.Background(), domain.ChannelTypeMeta, "payload-assinado")
		assert.NoError(t, err)
	})

	t.Run("assinatura inválida é rejeitada sem tocar a integração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		channel := integratormocks.NewMockChannel(ctrl)
		service, _, _ := newTestService(t, ctrl, channel)

		channel.EXPECT().SignOutCallback("payload-adulterado").Return("", crypto.ErrInvalidSignature)

		err := service.HandleSignOut(context.Background(), domain.ChannelTypeMeta, "payload-adulterado")
		assert.ErrorIs(t, err, crypto.ErrInvalidSignature)
	})

	t.Run("usuário sem integração retorna não encontrada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		channel := integratormocks.NewMockChannel(ctrl)
		service, integrationRepo, _ := newTestService(t, ctrl, channel)

		channel.EXPECT().SignOutCallback("payload-assinado").Return("user-desconhecido", nil)

		integrationRepo.EXPECT().
			GetByExternalID(domain.ChannelTypeMeta, "user-desconhecido").
			Return(nil, nil)

		err := service.HandleSignOut(context.Background(), domain.ChannelTypeMeta, "payload-assinado")
		assert.ErrorIs(t, err, domain.ErrIntegrationNotFound)
	})
}

func TestConnect_IntegracaoDuplicada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channel := integratormocks.NewMockChannel(ctrl)
	service, integrationRepo, _ := newTestService(t, ctrl, channel)

	channel.EXPECT().
		ExchangeCodeForTokens(gomock.Any(), "code-123").
		Return(&domain.OAuthTokens{AccessToken: "token-em-claro"}, nil)

	channel.EXPECT().
		GetUserID(gomock.Any(), gomock.Any()).
		Return("user-42", nil)

	integrationRepo.EXPECT().
		Save(gomock.Any()).
		Return(domain.ErrIntegrationAlreadyExists)

	_, err := service.Connect(context.Background(), "org-1", domain.ChannelTypeMeta, "code-123")
	assert.ErrorIs(t, err, domain.ErrIntegrationAlreadyExists)
}

func TestSyncIntegration_TokenCorrompidoMarcaIntegracao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channel := integratormocks.NewMockChannel(ctrl)
	service, integrationRepo, _ := newTestService(t, ctrl, channel)

	// Token gravado que não passa pela descriptografia: a sincronização marca
	// a integração como ERRORED em vez de propagar o erro do cipher
	integrationRepo.EXPECT().
		GetByID("int-1").
		Return(&domain.Integration{
			ID:          "int-1",
			Type:        domain.ChannelTypeMeta,
			Status:      domain.IntegrationStatusConnected,
			AccessToken: "nao-e-um-token-criptografado",
		}, nil)

	integrationRepo.EXPECT().
		UpdateStatus("int-1", domain.IntegrationStatusErrored).
		Return(nil)

	err := service.SyncIntegration(context.Background(), "int-1", false)
	assert.Error(t, err)
}

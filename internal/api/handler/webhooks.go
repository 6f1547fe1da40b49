package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/usecases/channeling"
	"github.com/vfg2006/channel-sync-api/pkg/apiErrors"
	"github.com/vfg2006/channel-sync-api/pkg/crypto"
)

// SignOutWebhook recebe a desautorização iniciada pelo canal. O payload
// assinado chega como form (signed_request) ou como corpo cru.
func SignOutWebhook(service *channeling.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channelType, ok := channelTypeFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrChannelUnknown, "Tipo de canal desconhecido", nil)
			return
		}

		payload, err := signOutPayload(r)
		if err != nil || payload == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Payload de desautorização ausente", nil)
			return
		}

		if err := service.HandleSignOut(r.Context(), channelType, payload); err != nil {
			switch {
			case errors.Is(err, crypto.ErrInvalidSignature):
				logrus.WithField("channel_type", channelType).
					Warn("Webhook de desautorização com assinatura inválida")
				apiErrors.WriteError(w, apiErrors.ErrInvalidSignedRequest, "Assinatura do payload inválida", nil)

			case errors.Is(err, domain.ErrIntegrationNotFound):
				apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Integração não encontrada para o usuário informado", nil)

			case errors.Is(err, domain.ErrSignOutNotSupported):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Canal não possui webhook de desautorização", nil)

			default:
				logrus.WithError(err).Error("Erro ao processar webhook de desautorização")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar desautorização", nil)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}

func signOutPayload(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return "", err
		}
		return r.PostFormValue("signed_request"), nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(body)), nil
}

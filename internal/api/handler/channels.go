package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/usecases/channeling"
	"github.com/vfg2006/channel-sync-api/pkg/apiErrors"
)

// stateTTL limita a validade do state entre o redirect e o callback OAuth
const stateTTL = 15 * time.Minute

// channelTypeFromRequest extrai e valida o canal do parâmetro :type da URL
func channelTypeFromRequest(r *http.Request) (domain.ChannelType, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("type")
	channelType := domain.ChannelType(strings.ToUpper(raw))
	return channelType, channelType.IsValid()
}

// signState embute a organização em um state assinado, verificado no callback
func signState(secret, organizationID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"org": organizationID,
		"exp": time.Now().Add(stateTTL).Unix(),
	})

	return token.SignedString([]byte(secret))
}

func parseState(secret, state string) (string, error) {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura do state inesperado")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("claims do state inválidas")
	}

	organizationID, ok := claims["org"].(string)
	if !ok || organizationID == "" {
		return "", errors.New("state sem organização")
	}

	return organizationID, nil
}

// AuthorizeChannel redireciona o navegador para a tela de consentimento do
// canal, com a organização embutida no state
func AuthorizeChannel(cfg *config.Config, service *channeling.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channelType, ok := channelTypeFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrChannelUnknown, "Tipo de canal desconhecido", nil)
			return
		}

		organizationID := r.URL.Query().Get("organization_id")
		if organizationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro organization_id é obrigatório", nil)
			return
		}

		state, err := signState(cfg.Crypto.StateSecret, organizationID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao assinar o state do fluxo OAuth")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar autorização", nil)
			return
		}

		authURL, err := service.GenerateAuthURL(channelType, state)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrChannelUnknown, "Canal não registrado", nil)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	})
}

// ChannelCallback conclui o fluxo OAuth: valida o state, troca o code por
// tokens e cria a integração
func ChannelCallback(cfg *config.Config, service *channeling.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channelType, ok := channelTypeFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrChannelUnknown, "Tipo de canal desconhecido", nil)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro code é obrigatório", nil)
			return
		}

		organizationID, err := parseState(cfg.Crypto.StateSecret, r.URL.Query().Get("state"))
		if err != nil {
			logrus.WithError(err).Warn("State do callback OAuth inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "State inválido ou expirado", nil)
			return
		}

		integration, err := service.Connect(r.Context(), organizationID, channelType, code)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"organization_id": organizationID,
				"channel_type":    channelType,
			}).Error("Erro ao conectar integração")

			if errors.Is(err, domain.ErrIntegrationAlreadyExists) {
				apiErrors.WriteError(w, apiErrors.ErrIntegrationAlreadyExists, "Já existe uma integração deste canal para a organização", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrOAuthExchangeFailed, "Erro na autorização junto ao canal", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"id":           integration.ID,
			"channel_type": integration.Type,
			"status":       integration.Status,
		}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// DisconnectChannel revoga a integração do canal para a organização
func DisconnectChannel(service *channeling.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channelType, ok := channelTypeFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrChannelUnknown, "Tipo de canal desconhecido", nil)
			return
		}

		organizationID := r.URL.Query().Get("organization_id")
		if organizationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro organization_id é obrigatório", nil)
			return
		}

		if err := service.Disconnect(r.Context(), organizationID, channelType); err != nil {
			if errors.Is(err, domain.ErrIntegrationNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Integração não encontrada", nil)
				return
			}

			logrus.WithError(err).Error("Erro ao desconectar integração")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao desconectar integração", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

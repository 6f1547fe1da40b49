package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/internal/domain"
	"github.com/vfg2006/channel-sync-api/internal/usecases/channeling"
	"github.com/vfg2006/channel-sync-api/pkg/apiErrors"
)

// AdPreview resolve o iframe de pré-visualização de um anúncio. Publisher,
// device e position são opcionais e refinam a escolha do formato.
func AdPreview(service *channeling.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if adID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador do anúncio é obrigatório", nil)
			return
		}

		placement := domain.PreviewPlacement{
			Publisher: optionalQueryParam(r, "publisher"),
			Device:    optionalQueryParam(r, "device"),
			Position:  optionalQueryParam(r, "position"),
		}

		preview, err := service.GetAdPreview(r.Context(), adID, placement)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAdNotFound):
				apiErrors.WriteError(w, apiErrors.ErrPreviewUnavailable, "Anúncio não encontrado", nil)

			case errors.Is(err, domain.ErrPreviewNotSupported):
				apiErrors.WriteError(w, apiErrors.ErrPreviewUnavailable, "Canal não suporta pré-visualização de anúncios", nil)

			case errors.Is(err, domain.ErrIntegrationNotFound):
				apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Integração do anúncio não encontrada", nil)

			default:
				logrus.WithError(err).WithField("ad_id", adID).Error("Erro ao buscar pré-visualização")
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao buscar pré-visualização no canal", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(preview); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func optionalQueryParam(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}

package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/channel-sync-api/internal/api/handler/router"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/usecases/channeling"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Channels(cfg *config.Config, service *channeling.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/channels/:type/authorize",
			Method:  http.MethodGet,
			Handler: AuthorizeChannel(cfg, service),
		},
		{
			Path:    "/v1/channels/:type/callback",
			Method:  http.MethodGet,
			Handler: ChannelCallback(cfg, service),
		},
		{
			Path:    "/v1/channels/:type",
			Method:  http.MethodDelete,
			Handler: DisconnectChannel(service),
		},
	}
}

func Webhooks(service *channeling.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/webhooks/:type/signout",
			Method:  http.MethodPost,
			Handler: SignOutWebhook(service),
		},
	}
}

func Previews(service *channeling.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ads/:id/preview",
			Method:  http.MethodGet,
			Handler: AdPreview(service),
		},
	}
}

func Sync(service *channeling.Service, services SyncJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/refresh-all",
			Method:  http.MethodPost,
			Handler: RefreshAll(service),
		},
		{
			Path:    "/v1/sync/check-reports",
			Method:  http.MethodPost,
			Handler: CheckReports(services),
		},
		{
			Path:    "/v1/sync/channels/run",
			Method:  http.MethodPost,
			Handler: RunChannelSync(services),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(services),
		},
	}
}

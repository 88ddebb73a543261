package handler

import (
	"net/http"

	"github.com/vfg2006/ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Connections(connector connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/connections",
			Method:  http.MethodPost,
			Handler: CreateConnection(connector),
		},
		{
			Path:    "/v1/connections",
			Method:  http.MethodGet,
			Handler: ListConnections(connector),
		},
		{
			Path:    "/v1/connections/:account_id",
			Method:  http.MethodDelete,
			Handler: DeleteConnection(connector),
		},
	}
}

func MetaAccounts(service insighting.Insighter, connector connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/accounts",
			Method:  http.MethodGet,
			Handler: ListMetaAccounts(service, connector),
		},
	}
}

func Insights(service insighting.Insighter, connector connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/campaigns",
			Method:  http.MethodGet,
			Handler: GetCampaignsWithInsights(service, connector),
		},
		{
			Path:    "/v1/accounts/:id/campaigns/:campaign_id/adsets",
			Method:  http.MethodGet,
			Handler: GetAdSetsWithInsights(service, connector),
		},
		{
			Path:    "/v1/accounts/:id/adsets/:adset_id/ads",
			Method:  http.MethodGet,
			Handler: GetAdsWithInsights(service, connector),
		},
		{
			Path:    "/v1/accounts/:id/insights/summary",
			Method:  http.MethodGet,
			Handler: GetAccountSummary(service, connector),
		},
		{
			Path:    "/v1/accounts/:id/insights/daily",
			Method:  http.MethodGet,
			Handler: GetDailyInsights(service, connector),
		},
		{
			Path:    "/v1/accounts/:id/entities/:entity_id/status",
			Method:  http.MethodPut,
			Handler: UpdateEntityStatus(service, connector),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

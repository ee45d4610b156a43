package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/campaign-advisor-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/account"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/advising"
	"github.com/vfg2006/campaign-advisor-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Sync(scheduler SyncScheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(scheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSync(scheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

// Me agrupa as rotas que operam sobre a conexão, contas e campanhas do usuário autenticado
func Me(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me/connection",
			Method:      http.MethodPost,
			Handler:     ConnectAds(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/connection",
			Method:      http.MethodGet,
			Handler:     GetConnection(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/connection",
			Method:      http.MethodDelete,
			Handler:     DisconnectAds(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/sync/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/accounts",
			Method:      http.MethodGet,
			Handler:     ListAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/accounts/selection",
			Method:      http.MethodPut,
			Handler:     UpdateAccountSelection(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/campaigns/:id/goals",
			Method:      http.MethodPut,
			Handler:     UpdateCampaignGoals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Advice(service advising.AdviceService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/advice/consensus",
			Method:      http.MethodPost,
			Handler:     ConsensusAdvice(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/advice/single",
			Method:      http.MethodPost,
			Handler:     SingleProviderAdvice(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/recommendations",
			Method:      http.MethodGet,
			Handler:     ListRecommendations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/recommendations/:id/apply",
			Method:      http.MethodPost,
			Handler:     ApplyRecommendation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/recommendations/:id/dismiss",
			Method:      http.MethodPost,
			Handler:     DismissRecommendation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

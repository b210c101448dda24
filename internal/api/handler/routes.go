package handler

import (
	"net/http"
	"time"

	"github.com/ledgerline/crm-intelligence-api/internal/api/handler/router"
	"github.com/ledgerline/crm-intelligence-api/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

func Intelligence(provider TenantProvider, dashboardMaxAge time.Duration) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/intelligence/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(provider, dashboardMaxAge),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/intelligence/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshIntelligence(provider),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/intelligence/insights",
			Method:      http.MethodGet,
			Handler:     GetInsights(provider, dashboardMaxAge),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/intelligence/actions",
			Method:      http.MethodGet,
			Handler:     GetActions(provider, dashboardMaxAge),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/targets/monthly",
			Method:      http.MethodPut,
			Handler:     SetMonthlyTarget(provider),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Goals(provider TenantProvider) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/goals/:year",
			Method:      http.MethodGet,
			Handler:     GetGoalProgress(provider),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/goals/:year",
			Method:      http.MethodPut,
			Handler:     SetYearlyGoal(provider),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/goals/:year/cockpit",
			Method:      http.MethodGet,
			Handler:     GetGoalCockpit(provider),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/:type/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

package handler

import (
	"net/http"

	"github.com/leonaardoschneider1/painel-vendas-api/internal/api/handler/router"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/scheduler"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/authenticating"
	"github.com/leonaardoschneider1/painel-vendas-api/internal/usecases/dashboarding"
	"github.com/leonaardoschneider1/painel-vendas-api/pkg/middleware"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/options",
			Method:      http.MethodGet,
			Handler:     GetFilterOptions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/summary",
			Method:      http.MethodGet,
			Handler:     GetSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/entities/:dimension",
			Method:      http.MethodGet,
			Handler:     GetEntities(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/suppliers",
			Method:      http.MethodGet,
			Handler:     GetSuppliers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/products",
			Method:      http.MethodGet,
			Handler:     GetProducts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/pivot",
			Method:      http.MethodGet,
			Handler:     GetPivot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/map",
			Method:      http.MethodGet,
			Handler:     GetMap(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/period",
			Method:      http.MethodGet,
			Handler:     GetReferencePeriod(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(service *scheduler.DatasetSyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/dataset/run",
			Method:      http.MethodPost,
			Handler:     RunDatasetSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/dataset/status",
			Method:      http.MethodGet,
			Handler:     GetDatasetSyncStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

package handler

import (
	"net/http"

	"github.com/vfg2006/resale-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/resale-ledger-api/pkg/middleware"
)

// maxBodyBytes limita o corpo dos POSTs
const maxBodyBytes = 64 << 10

func ownerRoute() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.OwnerOnly()}
}

func ownerWriteRoute() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.OwnerOnly(), middleware.LimitBody(maxBodyBytes)}
}

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
			Path:        "/v1/login",
			Method:      http.MethodPost,
			Handler:     Login(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.LimitBody(maxBodyBytes)},
		},
	}
}

func Sales(service ledger.Ledger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: ownerRoute(),
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: ownerWriteRoute(),
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSale(service),
			Middlewares: ownerRoute(),
		},
	}
}

func Inventory(service ledger.Ledger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/inventory",
			Method:      http.MethodGet,
			Handler:     ListInventory(service),
			Middlewares: ownerRoute(),
		},
		{
			Path:        "/v1/inventory",
			Method:      http.MethodPost,
			Handler:     CreateInventoryItem(service),
			Middlewares: ownerWriteRoute(),
		},
		{
			Path:        "/v1/inventory/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteInventoryItem(service),
			Middlewares: ownerRoute(),
		},
		{
			Path:        "/v1/inventory/:id/sold",
			Method:      http.MethodPost,
			Handler:     MarkInventorySold(service),
			Middlewares: ownerWriteRoute(),
		},
	}
}

func Expenses(service ledger.Ledger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/expenses",
			Method:      http.MethodGet,
			Handler:     ListExpenses(service),
			Middlewares: ownerRoute(),
		},
		{
			Path:        "/v1/expenses",
			Method:      http.MethodPost,
			Handler:     CreateExpense(service),
			Middlewares: ownerWriteRoute(),
		},
		{
			Path:        "/v1/expenses/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteExpense(service),
			Middlewares: ownerRoute(),
		},
	}
}

func Dashboard(service ledger.Ledger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: ownerRoute(),
		},
		{
			Path:        "/v1/export/:collection",
			Method:      http.MethodGet,
			Handler:     ExportCollection(service),
			Middlewares: ownerRoute(),
		},
		{
			Path:        "/v1/report.pdf",
			Method:      http.MethodGet,
			Handler:     DashboardReport(service),
			Middlewares: ownerRoute(),
		},
	}
}

func Backup(service BackupRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/backup/run",
			Method:      http.MethodPost,
			Handler:     RunBackup(service),
			Middlewares: ownerRoute(),
		},
		{
			Path:        "/v1/backup/status",
			Method:      http.MethodGet,
			Handler:     GetBackupStatus(service),
			Middlewares: ownerRoute(),
		},
	}
}

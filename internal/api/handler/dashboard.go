package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
)

func GetDashboard(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filters, ok := withFilters(w, r)
		if !ok {
			return
		}

		dashboard, err := service.Dashboard(r.Context(), filters)
		if err != nil {
			handleLedgerError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	})
}

// ExportCollection baixa a coleção filtrada como CSV
func ExportCollection(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		collection := httprouter.ParamsFromContext(r.Context()).ByName("collection")

		filters, ok := withFilters(w, r)
		if !ok {
			return
		}

		export, err := service.Export(r.Context(), collection, filters)
		if err != nil {
			handleLedgerError(w, err)
			return
		}

		writeFile(w, r, export)
	})
}

func DashboardReport(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filters, ok := withFilters(w, r)
		if !ok {
			return
		}

		report, err := service.Report(r.Context(), filters)
		if err != nil {
			handleLedgerError(w, err)
			return
		}

		writeFile(w, r, report)
	})
}

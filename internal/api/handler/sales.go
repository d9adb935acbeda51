package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
)

// ListSales devolve as vendas filtradas, ordenadas pelo nome do item
func ListSales(service ledger.Ledger) http.Handler {
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

		writeJSON(w, r, http.StatusOK, dashboard.Sales)
	})
}

func CreateSale(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateSaleRequest
		if !decodeBody(w, r, &req) {
			return
		}

		sale, err := service.AddSale(r.Context(), &req)
		if err != nil {
			handleLedgerError(w, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, sale)
	})
}

func DeleteSale(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteSale(r.Context(), id); err != nil {
			handleLedgerError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

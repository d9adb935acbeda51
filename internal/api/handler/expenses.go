package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
)

func ListExpenses(service ledger.Ledger) http.Handler {
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

		writeJSON(w, r, http.StatusOK, dashboard.Expenses)
	})
}

func CreateExpense(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateExpenseRequest
		if !decodeBody(w, r, &req) {
			return
		}

		expense, err := service.AddExpense(r.Context(), &req)
		if err != nil {
			handleLedgerError(w, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, expense)
	})
}

func DeleteExpense(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteExpense(r.Context(), id); err != nil {
			handleLedgerError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

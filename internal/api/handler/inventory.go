package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
)

// ListInventory ignora o filtro de ano: o estoque é sempre o atual
func ListInventory(service ledger.Ledger) http.Handler {
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

		writeJSON(w, r, http.StatusOK, dashboard.Inventory)
	})
}

func CreateInventoryItem(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateInventoryItemRequest
		if !decodeBody(w, r, &req) {
			return
		}

		item, err := service.AddInventoryItem(r.Context(), &req)
		if err != nil {
			handleLedgerError(w, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, item)
	})
}

func DeleteInventoryItem(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteInventoryItem(r.Context(), id); err != nil {
			handleLedgerError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// MarkInventorySold registra a venda do item e o remove do estoque
func MarkInventorySold(service ledger.Ledger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req domain.MarkSoldRequest
		if !decodeBody(w, r, &req) {
			return
		}

		sale, err := service.MarkInventorySold(r.Context(), id, &req)
		if err != nil {
			handleLedgerError(w, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, sale)
	})
}

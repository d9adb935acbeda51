package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/resale-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/resale-ledger-api/pkg/log"
	"github.com/vfg2006/resale-ledger-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// now é trocado nos testes para fixar o ano padrão dos filtros
var now = time.Now

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

func writeFile(w http.ResponseWriter, r *http.Request, export *domain.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Content); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar arquivo")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

// handleLedgerError traduz os erros do ledger para o envelope da API
func handleLedgerError(w http.ResponseWriter, err error) {
	var ledgerErr *ledger.LedgerError
	if errors.As(err, &ledgerErr) {
		var details map[string]any
		switch {
		case errors.Is(err, ledger.ErrPartialMarkSold):
			details = map[string]any{
				"sale_id":      ledgerErr.RecordID,
				"inventory_id": ledgerErr.RelatedID,
			}
		case ledgerErr.RecordID != "":
			details = map[string]any{"record_id": ledgerErr.RecordID}
		}
		apiErrors.WriteError(w, ledgerErr.Code, ledgerErr.Error(), details)
		return
	}

	switch {
	case ledger.IsValidationError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, ledger.ErrRecordNotFound):
		apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Registro não encontrado", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}

// filtersFromQuery monta os filtros a partir da query string. Sem parâmetros o resultado
// equivale aos filtros limpos do ano corrente; year=all desliga o filtro de ano.
func filtersFromQuery(r *http.Request) (domain.Filters, error) {
	query := r.URL.Query()

	year := strings.TrimSpace(query.Get("year"))
	if year == "" {
		year = now().Format("2006")
	}
	if year != domain.FilterAll && !isYear(year) {
		return domain.Filters{}, fmt.Errorf("ano inválido: %q", year)
	}

	filters := domain.DefaultFilters(year)
	filters.Search = strings.TrimSpace(query.Get("search"))

	if platform := strings.TrimSpace(query.Get("platform")); platform != "" && !strings.EqualFold(platform, domain.FilterAll) {
		parsed, ok := domain.ParsePlatform(platform)
		if !ok {
			return domain.Filters{}, fmt.Errorf("plataforma inválida: %q", platform)
		}
		filters.Platform = string(parsed)
	}

	for _, bound := range []struct {
		param string
		dst   *string
	}{
		{"start", &filters.StartDate},
		{"end", &filters.EndDate},
	} {
		value := strings.TrimSpace(query.Get(bound.param))
		if _, err := utils.ParseDate(value); err != nil {
			return domain.Filters{}, fmt.Errorf("data inválida em %s: %q", bound.param, value)
		}
		*bound.dst = value
	}

	return filters, nil
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// withFilters resolve os filtros ou responde 400
func withFilters(w http.ResponseWriter, r *http.Request) (domain.Filters, bool) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return domain.Filters{}, false
	}
	return filters, true
}

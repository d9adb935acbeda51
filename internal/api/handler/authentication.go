package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/resale-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/resale-ledger-api/pkg/log"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.Login(req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, domain.LoginResponse{Token: token})
	}
}

func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if authErr.Code == apiErrors.ErrInternalServer || authErr.Code == apiErrors.ErrAuthNotConfigured {
			log.ForContext(r.Context()).WithError(err).Error("Erro no login")
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado no login")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
}

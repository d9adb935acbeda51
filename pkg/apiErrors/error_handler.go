package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro devolvidos ao cliente
const (
	// Erros de autenticação
	ErrInvalidCredentials = "AUTH_001" // Senha do dono incorreta
	ErrInvalidToken       = "AUTH_002" // Token ausente ou inválido
	ErrAuthNotConfigured  = "AUTH_003" // Hash da senha não configurado

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Corpo da requisição inválido
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Número, data ou plataforma em formato inválido

	// Erros de registro
	ErrRecordNotFound = "REC_001" // Registro não encontrado no record store

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Falha no record store
	ErrPartialFailure    = "SRV_003" // Operação em duas etapas concluída pela metade
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrAuthNotConfigured:   http.StatusServiceUnavailable,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrRecordNotFound:      http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusBadGateway,
	ErrPartialFailure:      http.StatusInternalServerError,
}

// APIError é o envelope de erro padronizado da API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor devolve o status HTTP associado ao código (500 se desconhecido)
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado na resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

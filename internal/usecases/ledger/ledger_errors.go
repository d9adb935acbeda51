package ledger

import (
	"errors"
	"fmt"

	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/pricing"
)

var (
	// Erros de validação, sempre detectados antes de qualquer gravação
	ErrInvalidSalePrice    = pricing.ErrInvalidSalePrice
	ErrInvalidAmount       = pricing.ErrInvalidAmount
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidPlatform     = errors.New("plataforma inválida")
	ErrInvalidDate         = errors.New("data inválida")
	ErrInvalidCollection   = errors.New("coleção inválida")

	// Erros do record store
	ErrDatabaseOperation = errors.New("erro ao realizar operação no record store")
	ErrRecordNotFound    = repository.ErrNotFound

	// A venda foi gravada mas o item de estoque continua lá
	ErrPartialMarkSold = errors.New("venda registrada mas o item de estoque não foi removido")

	ErrReportGeneration = errors.New("erro ao gerar relatório")
)

// LedgerError carrega o código da API junto com o contexto do registro envolvido
type LedgerError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	RecordID  string // Registro afetado (quando aplicável)
	RelatedID string // Segundo registro envolvido, como o item de estoque no "mark as sold"
	Details   string
}

func (e *LedgerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

func NewLedgerError(baseErr error, code string, details string) *LedgerError {
	return &LedgerError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewRecordError(baseErr error, code string, recordID string, details string) *LedgerError {
	return &LedgerError{
		Err:      baseErr,
		Code:     code,
		RecordID: recordID,
		Details:  details,
	}
}

// IsValidationError indica um erro de entrada do usuário
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSalePrice) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrMissingRequiredData) ||
		errors.Is(err, ErrInvalidPlatform) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidCollection)
}

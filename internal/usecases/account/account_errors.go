package account

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de contas
var (
	// Erros de validação
	ErrInvalidConnection = errors.New("invalid ads connection request")
	ErrInvalidGoals      = errors.New("invalid campaign goals")

	// Erros de recurso
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrNoConnection     = errors.New("no ads connection")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrSaveConnection    = errors.New("error saving ads connection")
	ErrFetchAccounts     = errors.New("error fetching accounts from database")
	ErrFetchCampaigns    = errors.New("error fetching campaigns from database")
)

// AccountError é um erro com contexto adicional para contas
type AccountError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	AccountID string // ID da conta ou campanha envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AccountError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError cria um novo AccountError
func NewAccountError(err error, code string, details string) *AccountError {
	return &AccountError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewAccountErrorWithID cria um novo AccountError com ID da conta
func NewAccountErrorWithID(err error, code string, accountID string, details string) *AccountError {
	return &AccountError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}

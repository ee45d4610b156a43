package syncing

import (
	"errors"
	"fmt"
)

var (
	// Recuperado localmente: o resolvedor cai para a conta raiz isolada
	ErrAccountHierarchy = errors.New("error listing child accounts")

	// Isolados por conta / por identidade dentro de um ciclo
	ErrAccountFetch  = errors.New("error fetching account campaigns")
	ErrAccountUpsert = errors.New("error saving account campaigns")
	ErrIdentitySync  = errors.New("error syncing identity")

	ErrUnusableCredential = errors.New("ads connection credential is not usable")
	ErrNoActiveConnection = errors.New("no active ads connection")
	ErrListConnections    = errors.New("error listing active ads connections")

	// Operações do usuário sobre a própria conexão
	ErrAccountNotFound = errors.New("account not found")
	ErrClearCampaigns  = errors.New("error clearing campaigns")
	ErrClearAccounts   = errors.New("error clearing accounts")
	ErrDeactivate      = errors.New("error deactivating ads connection")
	ErrSaveSelection   = errors.New("error saving account selection")
	ErrLoadConnection  = errors.New("error loading ads connection")
)

// SyncError carrega o contexto da falha (identidade e conta) para logs e auditoria
type SyncError struct {
	Err       error
	Code      string
	UserID    int
	AccountID string
	Details   string
}

func (e *SyncError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(err error, code string, userID int, details string) *SyncError {
	return &SyncError{
		Err:     err,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}

func NewAccountSyncError(err error, code string, userID int, accountID string, details string) *SyncError {
	return &SyncError{
		Err:       err,
		Code:      code,
		UserID:    userID,
		AccountID: accountID,
		Details:   details,
	}
}

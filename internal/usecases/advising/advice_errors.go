package advising

import (
	"errors"
	"fmt"
)

var (
	// Recuperado no adaptador: vira resposta com confiança zero
	ErrTransientProvider = errors.New("provider call failed")

	ErrInsufficientProviders = errors.New("insufficient providers")
	ErrUnknownProvider       = errors.New("unknown provider")
	ErrProviderUnavailable   = errors.New("provider not configured")
	ErrProviderFailed        = errors.New("provider returned no usable answer")

	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrRecommendationResolved = errors.New("recommendation already resolved")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating ID")
)

// AdviceError carrega o código de API junto do erro base
type AdviceError struct {
	Err     error
	Code    string
	Details string
}

func (e *AdviceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AdviceError) Unwrap() error {
	return e.Err
}

func NewAdviceError(err error, code string, details string) *AdviceError {
	return &AdviceError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

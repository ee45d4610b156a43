// Package handler contém os handlers HTTP e a tabela de rotas da API.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/account"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/advising"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/syncing"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SyncScheduler é a parte do agendador exposta pela API
type SyncScheduler interface {
	GetStatus() domain.SyncStatus
	TriggerManualSync(ctx context.Context) domain.ManualSyncResult
}

func currentUser(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok || claims == nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}
	return claims, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeUseCaseError traduz os erros contextuais dos casos de uso no código de API
func writeUseCaseError(w http.ResponseWriter, err error, fallback string) {
	var (
		accountErr *account.AccountError
		syncErr    *syncing.SyncError
		adviceErr  *advising.AdviceError
	)

	switch {
	case errors.As(err, &adviceErr):
		apiErrors.WriteError(w, adviceErr.Code, adviceErr.Error(), nil)

	case errors.As(err, &accountErr):
		var details map[string]any
		if accountErr.AccountID != "" {
			details = map[string]any{"id": accountErr.AccountID}
		}
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), details)

	case errors.As(err, &syncErr):
		var details map[string]any
		if syncErr.AccountID != "" {
			details = map[string]any{"account_id": syncErr.AccountID}
		}
		apiErrors.WriteError(w, syncErr.Code, syncErr.Error(), details)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
		return false
	}
	return true
}

package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/account"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
)

// ConnectAds grava a conexão do usuário com a plataforma de anúncios
func ConnectAds(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ConnectAds")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var request domain.ConnectRequest
		if !decodeBody(w, r, &request) {
			return
		}

		resp, err := service.Connect(r.Context(), user.UserID, &request)
		if err != nil {
			log.ForContext(r.Context()).WithField("error", err.Error()).Error("Erro ao conectar conta de anúncios")
			writeUseCaseError(w, err, "Erro ao conectar conta de anúncios")
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	})
}

func GetConnection(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - GetConnection")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		conn, err := service.GetConnection(r.Context(), user.UserID)
		if err != nil {
			writeUseCaseError(w, err, "Erro ao consultar conexão")
			return
		}

		writeJSON(w, http.StatusOK, conn)
	})
}

// DisconnectAds encerra a conexão e remove contas e campanhas do usuário
func DisconnectAds(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - DisconnectAds")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := service.Disconnect(r.Context(), user.UserID); err != nil {
			log.ForContext(r.Context()).WithField("error", err.Error()).Error("Erro ao desconectar conta de anúncios")
			writeUseCaseError(w, err, "Erro ao desconectar conta de anúncios")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// RefreshSync apaga as campanhas do usuário e sincroniza novamente
func RefreshSync(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RefreshSync")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		report, err := service.Refresh(r.Context(), user.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithField("error", err.Error()).Error("Erro ao sincronizar campanhas do usuário")
			writeUseCaseError(w, err, "Erro ao sincronizar campanhas")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

func ListAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ListAccounts")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		accounts, err := service.ListAccounts(r.Context(), user.UserID)
		if err != nil {
			writeUseCaseError(w, err, "Erro ao listar contas")
			return
		}

		writeJSON(w, http.StatusOK, accounts)
	})
}

func UpdateAccountSelection(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - UpdateAccountSelection")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var request domain.UpdateAccountSelectionRequest
		if !decodeBody(w, r, &request) {
			return
		}

		accounts, err := service.SelectAccounts(r.Context(), user.UserID, &request)
		if err != nil {
			writeUseCaseError(w, err, "Erro ao salvar seleção de contas")
			return
		}

		writeJSON(w, http.StatusOK, accounts)
	})
}

// ListCampaigns aceita os filtros accountId e status na query
func ListCampaigns(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ListCampaigns")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var filters domain.CampaignFilters

		query := r.URL.Query()
		if accountID := strings.TrimSpace(query.Get("accountId")); accountID != "" {
			filters.ExternalAccountID = &accountID
		}

		if raw := strings.TrimSpace(query.Get("status")); raw != "" {
			status := domain.CampaignStatus(strings.ToLower(raw))
			switch status {
			case domain.CampaignStatusEnabled, domain.CampaignStatusPaused, domain.CampaignStatusRemoved, domain.CampaignStatusUnknown:
				filters.Status = &status
			default:
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de campanha inválido", map[string]any{"status": raw})
				return
			}
		}

		campaigns, err := service.ListCampaigns(r.Context(), user.UserID, filters)
		if err != nil {
			writeUseCaseError(w, err, "Erro ao listar campanhas")
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	})
}

func UpdateCampaignGoals(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - UpdateCampaignGoals")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha é obrigatório", nil)
			return
		}

		var request domain.UpdateCampaignGoalsRequest
		if !decodeBody(w, r, &request) {
			return
		}

		campaign, err := service.UpdateCampaignGoals(r.Context(), user.UserID, id, &request)
		if err != nil {
			writeUseCaseError(w, err, "Erro ao atualizar metas da campanha")
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	})
}

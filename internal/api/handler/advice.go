package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/advising"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"github.com/vfg2006/campaign-advisor-api/pkg/utils"
)

func ConsensusAdvice(service advising.AdviceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ConsensusAdvice")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var request domain.ConsensusRequest
		if !decodeBody(w, r, &request) {
			return
		}

		if _, err := utils.Validate(request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		resp, err := service.Consensus(r.Context(), user.UserID, &request)
		if err != nil {
			log.ForContext(r.Context()).WithField("error", err.Error()).Error("Erro ao gerar consenso")
			writeUseCaseError(w, err, "Erro ao gerar recomendação")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

// SingleProviderAdvice consulta apenas o provedor pedido; provedor desconhecido é 400
func SingleProviderAdvice(service advising.AdviceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - SingleProviderAdvice")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var request domain.SingleProviderRequest
		if !decodeBody(w, r, &request) {
			return
		}

		if _, err := utils.Validate(request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		resp, err := service.Single(r.Context(), user.UserID, &request)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"provider": request.Provider,
				"error":    err.Error(),
			}).Error("Erro ao consultar provedor de IA")
			writeUseCaseError(w, err, "Erro ao gerar recomendação")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

// ListRecommendations aceita os filtros campaignId e status na query
func ListRecommendations(service advising.AdviceService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ListRecommendations")

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var filters domain.RecommendationFilters

		query := r.URL.Query()
		if campaignID := strings.TrimSpace(query.Get("campaignId")); campaignID != "" {
			filters.CampaignID = &campaignID
		}

		if raw := strings.TrimSpace(query.Get("status")); raw != "" {
			status := domain.RecommendationStatus(strings.ToLower(raw))
			switch status {
			case domain.RecommendationPending, domain.RecommendationApplied, domain.RecommendationDismissed:
				filters.Status = &status
			default:
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de recomendação inválido", map[string]any{"status": raw})
				return
			}
		}

		recs, err := service.ListRecommendations(r.Context(), user.UserID, filters)
		if err != nil {
			writeUseCaseError(w, err, "Erro ao listar recomendações")
			return
		}

		writeJSON(w, http.StatusOK, recs)
	})
}

func ApplyRecommendation(service advising.AdviceService) http.Handler {
	return resolveRecommendation("ApplyRecommendation", service.Apply)
}

func DismissRecommendation(service advising.AdviceService) http.Handler {
	return resolveRecommendation("DismissRecommendation", service.Dismiss)
}

type resolveFunc func(ctx context.Context, userID int, recommendationID string) (*domain.Recommendation, error)

func resolveRecommendation(name string, resolve resolveFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - " + name)

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da recomendação é obrigatório", nil)
			return
		}

		rec, err := resolve(r.Context(), user.UserID, id)
		if err != nil {
			writeUseCaseError(w, err, "Erro ao atualizar recomendação")
			return
		}

		writeJSON(w, http.StatusOK, rec)
	})
}

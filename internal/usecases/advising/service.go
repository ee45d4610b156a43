package advising

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"github.com/vfg2006/campaign-advisor-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

type AdviceService interface {
	Consensus(ctx context.Context, userID int, request *domain.ConsensusRequest) (*domain.ConsensusResponse, error)
	Single(ctx context.Context, userID int, request *domain.SingleProviderRequest) (*domain.SingleProviderResponse, error)
	ListRecommendations(ctx context.Context, userID int, filters domain.RecommendationFilters) ([]*domain.Recommendation, error)
	Apply(ctx context.Context, userID int, recommendationID string) (*domain.Recommendation, error)
	Dismiss(ctx context.Context, userID int, recommendationID string) (*domain.Recommendation, error)
	PruneOlderThan(ctx context.Context, days int) (int64, error)
}

type Service struct {
	engine          *ConsensusEngine
	registry        *Registry
	recommendations repository.RecommendationRepository
	campaigns       repository.CampaignRepository
	audit           repository.AuditRepository
	burnInDays      int
	now             func() time.Time
}

func NewService(
	engine *ConsensusEngine,
	registry *Registry,
	recommendations repository.RecommendationRepository,
	campaigns repository.CampaignRepository,
	audit repository.AuditRepository,
	burnInDays int,
) *Service {
	return &Service{
		engine:          engine,
		registry:        registry,
		recommendations: recommendations,
		campaigns:       campaigns,
		audit:           audit,
		burnInDays:      burnInDays,
		now:             time.Now,
	}
}

func (s *Service) Consensus(ctx context.Context, userID int, request *domain.ConsensusRequest) (*domain.ConsensusResponse, error) {
	campaignID := normalizeCampaignID(request.CampaignID)

	campaign, err := s.loadCampaign(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.GenerateWithConsensus(ctx, request.Prompt, campaign)
	if err != nil {
		return nil, err
	}

	agreement := result.AgreementLevel
	rec := &domain.Recommendation{
		OwnerUserID:    userID,
		CampaignID:     campaignID,
		Type:           s.classify(ctx, result.FinalRecommendation, campaignID),
		Content:        result.FinalRecommendation,
		Confidence:     result.Confidence,
		Provider:       domain.ConsensusProviderLabel,
		AgreementLevel: &agreement,
	}

	if err := s.store(ctx, rec); err != nil {
		return nil, err
	}

	return &domain.ConsensusResponse{
		ID:                  rec.ID,
		FinalRecommendation: result.FinalRecommendation,
		Confidence:          result.Confidence,
		AgreementLevel:      result.AgreementLevel,
		Models:              result.Models,
		Type:                rec.Type,
	}, nil
}

// Single consulta um único provedor; nome desconhecido é erro, nunca cai para outro provedor
func (s *Service) Single(ctx context.Context, userID int, request *domain.SingleProviderRequest) (*domain.SingleProviderResponse, error) {
	name, err := domain.ParseProviderName(request.Provider)
	if err != nil {
		return nil, NewAdviceError(ErrUnknownProvider, apiErrors.ErrUnknownProvider, request.Provider)
	}

	adapter, ok := s.registry.Get(name)
	if !ok {
		return nil, NewAdviceError(ErrProviderUnavailable, apiErrors.ErrProviderUnavailable, name.String())
	}

	campaignID := normalizeCampaignID(request.CampaignID)

	campaign, err := s.loadCampaign(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	response := adapter.Generate(ctx, request.Prompt, campaign)
	if !response.Usable() {
		return nil, NewAdviceError(ErrProviderFailed, apiErrors.ErrProviderFailed, response.Text)
	}

	rec := &domain.Recommendation{
		OwnerUserID: userID,
		CampaignID:  campaignID,
		Type:        s.classify(ctx, response.Text, campaignID),
		Content:     response.Text,
		Confidence:  response.Confidence,
		Provider:    name.String(),
	}

	if err := s.store(ctx, rec); err != nil {
		return nil, err
	}

	return &domain.SingleProviderResponse{
		ID:         rec.ID,
		Content:    response.Text,
		Confidence: response.Confidence,
		Model:      response.ModelID,
		Provider:   name.String(),
		Type:       string(rec.Type),
	}, nil
}

func (s *Service) ListRecommendations(ctx context.Context, userID int, filters domain.RecommendationFilters) ([]*domain.Recommendation, error) {
	recs, err := s.recommendations.List(ctx, userID, filters)
	if err != nil {
		return nil, NewAdviceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar recomendações")
	}
	return recs, nil
}

func (s *Service) Apply(ctx context.Context, userID int, recommendationID string) (*domain.Recommendation, error) {
	return s.resolve(ctx, userID, recommendationID, domain.RecommendationApplied)
}

func (s *Service) Dismiss(ctx context.Context, userID int, recommendationID string) (*domain.Recommendation, error) {
	return s.resolve(ctx, userID, recommendationID, domain.RecommendationDismissed)
}

// PruneOlderThan remove recomendações criadas há mais de days dias
func (s *Service) PruneOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -days)
	return s.recommendations.DeleteOlderThan(ctx, cutoff)
}

// resolve aplica a transição terminal; pending é o único estado de origem aceito
func (s *Service) resolve(ctx context.Context, userID int, id string, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	rec, err := s.recommendations.GetByID(ctx, userID, id)
	if err != nil {
		return nil, NewAdviceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if rec == nil {
		return nil, NewAdviceError(ErrRecommendationNotFound, apiErrors.ErrRecommendationNotFound, id)
	}

	if rec.IsTerminal() {
		return nil, NewAdviceError(ErrRecommendationResolved, apiErrors.ErrRecommendationResolved, string(rec.Status))
	}

	resolvedAt := s.now()
	updated, err := s.recommendations.UpdateStatus(ctx, userID, id, status, resolvedAt)
	if err != nil {
		return nil, NewAdviceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if !updated {
		return nil, NewAdviceError(ErrRecommendationResolved, apiErrors.ErrRecommendationResolved, "alterada por outra requisição")
	}

	rec.Status = status
	rec.ResolvedAt = &resolvedAt

	if err := s.audit.Record(ctx, &domain.AuditEntry{
		UserID: &userID,
		Action: domain.AuditRecommendation,
		Details: map[string]any{
			"recommendation_id": id,
			"status":            string(status),
		},
		Timestamp: resolvedAt,
	}); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"recommendation_id": id,
			"error":             err.Error(),
		}).Warn("Erro ao gravar registro de auditoria")
	}

	return rec, nil
}

// normalizeCampaignID trata id vazio ou só com espaços como pedido sem campanha
func normalizeCampaignID(campaignID *string) *string {
	if campaignID == nil {
		return nil
	}

	id := strings.TrimSpace(*campaignID)
	if id == "" {
		return nil
	}

	return &id
}

func (s *Service) loadCampaign(ctx context.Context, userID int, campaignID *string) (*domain.Campaign, error) {
	if campaignID == nil {
		return nil, nil
	}

	campaign, err := s.campaigns.GetByID(ctx, userID, *campaignID)
	if err != nil {
		return nil, NewAdviceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if campaign == nil {
		return nil, NewAdviceError(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, *campaignID)
	}

	return campaign, nil
}

// classify aplica o período de carência: com uma recomendação aplicada há menos de
// burnInDays dias na mesma campanha, a nova recomendação fica como monitor
func (s *Service) classify(ctx context.Context, text string, campaignID *string) domain.RecommendationType {
	kind := Classify(text)
	if kind == domain.RecommendationMonitor || campaignID == nil || s.burnInDays <= 0 {
		return kind
	}

	lastApplied, err := s.recommendations.LastAppliedAt(ctx, *campaignID)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"campaign_id": *campaignID,
			"error":       err.Error(),
		}).Warn("Erro ao consultar última recomendação aplicada, ignorando período de carência")
		return kind
	}

	if lastApplied != nil && s.now().Sub(*lastApplied) < time.Duration(s.burnInDays)*24*time.Hour {
		log.ForContext(ctx).WithField("campaign_id", *campaignID).Debug("Campanha em período de carência, recomendação rebaixada para monitor")
		return domain.RecommendationMonitor
	}

	return kind
}

func (s *Service) store(ctx context.Context, rec *domain.Recommendation) error {
	id, err := utils.GenerateID()
	if err != nil {
		return NewAdviceError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	rec.ID = id
	rec.Status = domain.RecommendationPending
	rec.CreatedAt = s.now()

	if err := s.recommendations.Create(ctx, rec); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": rec.OwnerUserID,
			"error":   err.Error(),
		}).Error("Erro ao salvar recomendação")
		return NewAdviceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar recomendação")
	}

	return nil
}

// AsAdviceError extrai o código de API de um erro do pacote
func AsAdviceError(err error) (*AdviceError, bool) {
	var adviceErr *AdviceError
	if errors.As(err, &adviceErr) {
		return adviceErr, true
	}
	return nil, false
}

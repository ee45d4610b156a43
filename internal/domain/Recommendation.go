package domain

import "time"

type RecommendationType string

const (
	RecommendationActionable    RecommendationType = "actionable"
	RecommendationMonitor       RecommendationType = "monitor"
	RecommendationClarification RecommendationType = "clarification"
)

type RecommendationStatus string

const (
	RecommendationPending   RecommendationStatus = "pending"
	RecommendationApplied   RecommendationStatus = "applied"
	RecommendationDismissed RecommendationStatus = "dismissed"
)

// ConsensusProviderLabel identifica recomendações produzidas pelo consenso entre provedores
const ConsensusProviderLabel = "Multi-AI Consensus"

type Recommendation struct {
	ID             string               `json:"id"`
	OwnerUserID    int                  `json:"owner_user_id"`
	CampaignID     *string              `json:"campaign_id"`
	Type           RecommendationType   `json:"type"`
	Content        string               `json:"content"`
	Confidence     int                  `json:"confidence"`
	Provider       string               `json:"provider"`
	AgreementLevel *int                 `json:"agreement_level,omitempty"`
	Status         RecommendationStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
	ResolvedAt     *time.Time           `json:"resolved_at,omitempty"`
}

// IsTerminal indica se a recomendação já foi aplicada ou descartada
func (r *Recommendation) IsTerminal() bool {
	return r.Status == RecommendationApplied || r.Status == RecommendationDismissed
}

type RecommendationFilters struct {
	CampaignID *string
	Status     *RecommendationStatus
}

type ConsensusRequest struct {
	Prompt     string  `json:"prompt" validate:"required,min=3"`
	CampaignID *string `json:"campaignId"`
}

type SingleProviderRequest struct {
	Prompt     string  `json:"prompt" validate:"required,min=3"`
	Provider   string  `json:"provider" validate:"required"`
	CampaignID *string `json:"campaignId"`
}

type SingleProviderResponse struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Confidence int    `json:"confidence"`
	Model      string `json:"model"`
	Provider   string `json:"provider"`
	Type       string `json:"type"`
}

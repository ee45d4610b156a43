package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChannelType string

const (
	ChannelSearch         ChannelType = "search"
	ChannelDisplay        ChannelType = "display"
	ChannelShopping       ChannelType = "shopping"
	ChannelVideo          ChannelType = "video"
	ChannelApp            ChannelType = "app"
	ChannelSmart          ChannelType = "smart"
	ChannelPerformanceMax ChannelType = "performance_max"
	ChannelLocalServices  ChannelType = "local_services"
	ChannelDiscovery      ChannelType = "discovery"
	ChannelTravel         ChannelType = "travel"
	ChannelUnknown        ChannelType = "unknown"
)

type CampaignStatus string

const (
	CampaignStatusEnabled CampaignStatus = "enabled"
	CampaignStatusPaused  CampaignStatus = "paused"
	CampaignStatusRemoved CampaignStatus = "removed"
	CampaignStatusUnknown CampaignStatus = "unknown"
)

// Campaign é o registro canônico de uma campanha com as métricas dos últimos 7 dias
type Campaign struct {
	ID                 string              `json:"id"`
	ExternalCampaignID string              `json:"external_campaign_id"`
	ExternalAccountID  string              `json:"external_account_id"`
	OwnerUserID        int                 `json:"owner_user_id"`
	Name               string              `json:"name"`
	ChannelType        ChannelType         `json:"channel_type"`
	Status             CampaignStatus      `json:"status"`
	DailyBudget        decimal.Decimal     `json:"daily_budget"`
	Impressions        decimal.Decimal     `json:"impressions"`
	Clicks             decimal.Decimal     `json:"clicks"`
	Conversions        decimal.Decimal     `json:"conversions"`
	ConversionValue    decimal.Decimal     `json:"conversion_value"`
	Cost               decimal.Decimal     `json:"cost"`
	CTR                decimal.Decimal     `json:"ctr"`
	AvgCPC             decimal.Decimal     `json:"avg_cpc"`
	ConversionRate     decimal.Decimal     `json:"conversion_rate"`
	ActualCPA          decimal.NullDecimal `json:"actual_cpa"`
	ActualROAS         decimal.NullDecimal `json:"actual_roas"`
	TargetCPA          decimal.NullDecimal `json:"target_cpa"`
	TargetROAS         decimal.NullDecimal `json:"target_roas"`
	GoalDescription    *string             `json:"goal_description"`
	LastSyncAt         time.Time           `json:"last_sync_at"`
}

var hundred = decimal.NewFromInt(100)

// RecomputeDerived recalcula CPA e ROAS a partir dos acumulados.
// Ambos ficam nulos quando o denominador é zero.
func (c *Campaign) RecomputeDerived() {
	c.ActualCPA = decimal.NullDecimal{}
	if !c.Conversions.IsZero() {
		c.ActualCPA = decimal.NewNullDecimal(c.Cost.DivRound(c.Conversions, 2))
	}

	c.ActualROAS = decimal.NullDecimal{}
	if !c.Cost.IsZero() {
		c.ActualROAS = decimal.NewNullDecimal(c.ConversionValue.DivRound(c.Cost, 2))
	}
}

// RecomputeRates recalcula CTR, CPC médio e taxa de conversão (percentuais com 2 casas)
func (c *Campaign) RecomputeRates() {
	c.CTR = decimal.Zero
	c.ConversionRate = decimal.Zero
	c.AvgCPC = decimal.Zero

	if !c.Impressions.IsZero() {
		c.CTR = c.Clicks.Mul(hundred).DivRound(c.Impressions, 2)
	}

	if !c.Clicks.IsZero() {
		c.AvgCPC = c.Cost.DivRound(c.Clicks, 2)
		c.ConversionRate = c.Conversions.Mul(hundred).DivRound(c.Clicks, 2)
	}
}

type CampaignFilters struct {
	ExternalAccountID *string
	Status            *CampaignStatus
}

type UpdateCampaignGoalsRequest struct {
	TargetCPA       decimal.NullDecimal `json:"targetCpa"`
	TargetROAS      decimal.NullDecimal `json:"targetRoas"`
	GoalDescription *string             `json:"goalDescription" validate:"omitempty,max=500"`
}

// DateWindow é um intervalo fechado de datas (sem horário)
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// TrailingDays monta a janela dos últimos n dias terminando ontem
func TrailingDays(now time.Time, days int) DateWindow {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	return DateWindow{
		Start: end.AddDate(0, 0, -(days - 1)),
		End:   end,
	}
}

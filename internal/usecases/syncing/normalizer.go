package syncing

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

var microsPerUnit = decimal.NewFromInt(1_000_000)

// Códigos de AdvertisingChannelType da API do Google Ads
var channelByCode = map[int]domain.ChannelType{
	2:  domain.ChannelSearch,
	3:  domain.ChannelDisplay,
	4:  domain.ChannelShopping,
	5:  domain.ChannelTravel, // HOTEL
	6:  domain.ChannelVideo,
	7:  domain.ChannelApp,           // MULTI_CHANNEL
	8:  domain.ChannelLocalServices, // LOCAL
	9:  domain.ChannelSmart,
	10: domain.ChannelPerformanceMax,
	11: domain.ChannelLocalServices,
	12: domain.ChannelDiscovery,
	13: domain.ChannelTravel,
	14: domain.ChannelDiscovery, // DEMAND_GEN
}

var channelByLabel = map[string]domain.ChannelType{
	"SEARCH":          domain.ChannelSearch,
	"DISPLAY":         domain.ChannelDisplay,
	"SHOPPING":        domain.ChannelShopping,
	"HOTEL":           domain.ChannelTravel,
	"VIDEO":           domain.ChannelVideo,
	"MULTI_CHANNEL":   domain.ChannelApp,
	"APP":             domain.ChannelApp,
	"LOCAL":           domain.ChannelLocalServices,
	"SMART":           domain.ChannelSmart,
	"PERFORMANCE_MAX": domain.ChannelPerformanceMax,
	"LOCAL_SERVICES":  domain.ChannelLocalServices,
	"DISCOVERY":       domain.ChannelDiscovery,
	"DEMAND_GEN":      domain.ChannelDiscovery,
	"TRAVEL":          domain.ChannelTravel,
}

var statusByCode = map[int]domain.CampaignStatus{
	2: domain.CampaignStatusEnabled,
	3: domain.CampaignStatusPaused,
	4: domain.CampaignStatusRemoved,
}

var statusByLabel = map[string]domain.CampaignStatus{
	"ENABLED": domain.CampaignStatusEnabled,
	"PAUSED":  domain.CampaignStatusPaused,
	"REMOVED": domain.CampaignStatusRemoved,
}

// NormalizeChannelType nunca falha: valores desconhecidos viram "unknown" e são logados
func NormalizeChannelType(raw adsdomain.Enum) domain.ChannelType {
	if raw.Label != "" {
		if ch, ok := channelByLabel[strings.ToUpper(strings.TrimSpace(raw.Label))]; ok {
			return ch
		}
	} else if ch, ok := channelByCode[raw.Code]; ok {
		return ch
	}

	logrus.WithField("raw_channel_type", raw.String()).Warn("Tipo de canal desconhecido, usando 'unknown'")
	return domain.ChannelUnknown
}

func NormalizeStatus(raw adsdomain.Enum) domain.CampaignStatus {
	if raw.Label != "" {
		if st, ok := statusByLabel[strings.ToUpper(strings.TrimSpace(raw.Label))]; ok {
			return st
		}
	} else if st, ok := statusByCode[raw.Code]; ok {
		return st
	}

	logrus.WithField("raw_status", raw.String()).Warn("Status de campanha desconhecido, usando 'unknown'")
	return domain.CampaignStatusUnknown
}

// NormalizeMicros converte micros em moeda com 2 casas; nulo vira zero (campos agregáveis)
func NormalizeMicros(raw adsdomain.Micros) decimal.Decimal {
	if !raw.Valid {
		return decimal.Zero
	}
	return decimal.NewFromInt(raw.Value).DivRound(microsPerUnit, 2)
}

// NormalizeOptionalMicros mantém nulo como nulo, para distinguir "não definido" de zero
func NormalizeOptionalMicros(raw *adsdomain.Micros) decimal.NullDecimal {
	if raw == nil || !raw.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(NormalizeMicros(*raw))
}

func NormalizeCount(raw adsdomain.Int64) decimal.Decimal {
	if !raw.Valid {
		return decimal.Zero
	}
	return decimal.NewFromInt(raw.Value)
}

func NormalizeFloat(raw adsdomain.Float) decimal.Decimal {
	if !raw.Valid {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(raw.Value)
	if err != nil {
		logrus.WithField("raw_value", raw.Value).Warn("Valor numérico inválido, usando zero")
		return decimal.Zero
	}
	return d.Round(2)
}

func NormalizeOptionalFloat(raw *adsdomain.Float) decimal.NullDecimal {
	if raw == nil || !raw.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(NormalizeFloat(*raw))
}

// NormalizeCampaign converte a linha crua da plataforma no registro canônico,
// já com taxas, CPA e ROAS recalculados
func NormalizeCampaign(row adsdomain.CampaignRow, accountID string, ownerUserID int, syncedAt time.Time) *domain.Campaign {
	budget := NormalizeMicros(row.CampaignBudget.AmountMicros)
	if budget.IsNegative() {
		budget = decimal.Zero
	}

	campaign := &domain.Campaign{
		ExternalCampaignID: strconv.FormatInt(row.Campaign.ID.Value, 10),
		ExternalAccountID:  accountID,
		OwnerUserID:        ownerUserID,
		Name:               row.Campaign.Name,
		ChannelType:        NormalizeChannelType(row.Campaign.AdvertisingChannelType),
		Status:             NormalizeStatus(row.Campaign.Status),
		DailyBudget:        budget,
		Impressions:        NormalizeCount(row.Metrics.Impressions),
		Clicks:             NormalizeCount(row.Metrics.Clicks),
		Conversions:        NormalizeFloat(row.Metrics.Conversions),
		ConversionValue:    NormalizeFloat(row.Metrics.ConversionsValue),
		Cost:               NormalizeMicros(row.Metrics.CostMicros),
		LastSyncAt:         syncedAt,
	}

	if row.Campaign.TargetCPA != nil {
		campaign.TargetCPA = NormalizeOptionalMicros(&row.Campaign.TargetCPA.TargetCPAMicros)
	}
	if row.Campaign.TargetROAS != nil {
		campaign.TargetROAS = NormalizeOptionalFloat(&row.Campaign.TargetROAS.TargetROAS)
	}

	campaign.RecomputeRates()
	campaign.RecomputeDerived()

	return campaign
}

package syncing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	adsdomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

func TestNormalizeChannelType(t *testing.T) {
	tests := []struct {
		name     string
		raw      adsdomain.Enum
		expected domain.ChannelType
	}{
		{"Código de busca", adsdomain.EnumCode(2), domain.ChannelSearch},
		{"Código de performance max", adsdomain.EnumCode(10), domain.ChannelPerformanceMax},
		{"Hotel vira travel", adsdomain.EnumCode(5), domain.ChannelTravel},
		{"Demand gen vira discovery", adsdomain.EnumCode(14), domain.ChannelDiscovery},
		{"Rótulo de display", adsdomain.EnumLabel("DISPLAY"), domain.ChannelDisplay},
		{"Rótulo em minúsculas", adsdomain.EnumLabel("video"), domain.ChannelVideo},
		{"Código desconhecido", adsdomain.EnumCode(99), domain.ChannelUnknown},
		{"Rótulo desconhecido", adsdomain.EnumLabel("HOLOGRAM"), domain.ChannelUnknown},
		{"Valor ausente", adsdomain.Enum{}, domain.ChannelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeChannelType(tt.raw))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      adsdomain.Enum
		expected domain.CampaignStatus
	}{
		{"Ativa por código", adsdomain.EnumCode(2), domain.CampaignStatusEnabled},
		{"Pausada por código", adsdomain.EnumCode(3), domain.CampaignStatusPaused},
		{"Removida por rótulo", adsdomain.EnumLabel("REMOVED"), domain.CampaignStatusRemoved},
		{"Desconhecida", adsdomain.EnumLabel("UNSPECIFIED"), domain.CampaignStatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.raw))
		})
	}
}

func TestNormalizeMicros(t *testing.T) {
	tests := []struct {
		name     string
		raw      adsdomain.Micros
		expected string
	}{
		{"Cinco milhões de micros", adsdomain.NewMicros(5_000_000), "5"},
		{"Arredonda para 2 casas", adsdomain.NewMicros(1_234_567), "1.23"},
		{"Nulo agregável vira zero", adsdomain.Micros{}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMicros(tt.raw)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}

	t.Run("Cinco milhões formatado com 2 casas", func(t *testing.T) {
		assert.Equal(t, "5.00", NormalizeMicros(adsdomain.NewMicros(5_000_000)).StringFixed(2))
	})
}

func TestNormalizeOptionalMicros(t *testing.T) {
	t.Run("Meta nula continua nula", func(t *testing.T) {
		assert.False(t, NormalizeOptionalMicros(nil).Valid)
		assert.False(t, NormalizeOptionalMicros(&adsdomain.Micros{}).Valid)
	})

	t.Run("Meta definida é convertida", func(t *testing.T) {
		raw := adsdomain.NewMicros(12_500_000)
		got := NormalizeOptionalMicros(&raw)
		assert.True(t, got.Valid)
		assert.True(t, decimal.RequireFromString("12.5").Equal(got.Decimal))
	})
}

func TestNormalizeCampaign(t *testing.T) {
	syncedAt := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		row      adsdomain.CampaignRow
		validate func(t *testing.T, c *domain.Campaign)
	}{
		{
			name: "Campanha com conversões calcula CPA, ROAS e taxas",
			row: adsdomain.CampaignRow{
				Campaign: adsdomain.Campaign{
					ID:                     adsdomain.NewInt64(111),
					Name:                   "Busca Marca",
					Status:                 adsdomain.EnumLabel("ENABLED"),
					AdvertisingChannelType: adsdomain.EnumLabel("SEARCH"),
					TargetCPA:              &adsdomain.TargetCPA{TargetCPAMicros: adsdomain.NewMicros(20_000_000)},
				},
				CampaignBudget: adsdomain.CampaignBudget{AmountMicros: adsdomain.NewMicros(50_000_000)},
				Metrics: adsdomain.Metrics{
					Impressions:      adsdomain.NewInt64(1000),
					Clicks:           adsdomain.NewInt64(50),
					Conversions:      adsdomain.NewFloat("5"),
					ConversionsValue: adsdomain.NewFloat("400"),
					CostMicros:       adsdomain.NewMicros(100_000_000),
				},
			},
			validate: func(t *testing.T, c *domain.Campaign) {
				assert.Equal(t, "111", c.ExternalCampaignID)
				assert.Equal(t, "222", c.ExternalAccountID)
				assert.Equal(t, 7, c.OwnerUserID)
				assert.Equal(t, domain.ChannelSearch, c.ChannelType)
				assert.Equal(t, domain.CampaignStatusEnabled, c.Status)
				assert.True(t, decimal.NewFromInt(50).Equal(c.DailyBudget))
				assert.True(t, decimal.NewFromInt(100).Equal(c.Cost))
				assert.True(t, decimal.NewFromInt(5).Equal(c.CTR))
				assert.True(t, decimal.NewFromInt(2).Equal(c.AvgCPC))
				assert.True(t, decimal.NewFromInt(10).Equal(c.ConversionRate))
				assert.True(t, c.ActualCPA.Valid)
				assert.True(t, decimal.NewFromInt(20).Equal(c.ActualCPA.Decimal))
				assert.True(t, c.ActualROAS.Valid)
				assert.True(t, decimal.NewFromInt(4).Equal(c.ActualROAS.Decimal))
				assert.True(t, c.TargetCPA.Valid)
				assert.False(t, c.TargetROAS.Valid)
				assert.Equal(t, syncedAt, c.LastSyncAt)
			},
		},
		{
			name: "Sem conversões e sem custo CPA e ROAS ficam nulos",
			row: adsdomain.CampaignRow{
				Campaign: adsdomain.Campaign{
					ID:                     adsdomain.NewInt64(112),
					Name:                   "Display",
					Status:                 adsdomain.EnumCode(3),
					AdvertisingChannelType: adsdomain.EnumCode(3),
				},
			},
			validate: func(t *testing.T, c *domain.Campaign) {
				assert.Equal(t, domain.CampaignStatusPaused, c.Status)
				assert.False(t, c.ActualCPA.Valid)
				assert.False(t, c.ActualROAS.Valid)
				assert.True(t, c.Cost.IsZero())
				assert.True(t, c.CTR.IsZero())
			},
		},
		{
			name: "Custo sem conversões só calcula ROAS",
			row: adsdomain.CampaignRow{
				Campaign: adsdomain.Campaign{ID: adsdomain.NewInt64(113)},
				Metrics: adsdomain.Metrics{
					CostMicros: adsdomain.NewMicros(10_000_000),
				},
			},
			validate: func(t *testing.T, c *domain.Campaign) {
				assert.False(t, c.ActualCPA.Valid)
				assert.True(t, c.ActualROAS.Valid)
				assert.True(t, c.ActualROAS.Decimal.IsZero())
			},
		},
		{
			name: "Orçamento negativo é zerado",
			row: adsdomain.CampaignRow{
				Campaign:       adsdomain.Campaign{ID: adsdomain.NewInt64(114)},
				CampaignBudget: adsdomain.CampaignBudget{AmountMicros: adsdomain.NewMicros(-1_000_000)},
			},
			validate: func(t *testing.T, c *domain.Campaign) {
				assert.True(t, c.DailyBudget.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NormalizeCampaign(tt.row, "222", 7, syncedAt))
		})
	}
}

func TestNormalizeCampaign_Idempotente(t *testing.T) {
	row := adsdomain.CampaignRow{
		Campaign: adsdomain.Campaign{ID: adsdomain.NewInt64(1), Name: "X", AdvertisingChannelType: adsdomain.EnumCode(2)},
		Metrics: adsdomain.Metrics{
			Clicks:      adsdomain.NewInt64(3),
			Impressions: adsdomain.NewInt64(7),
			CostMicros:  adsdomain.NewMicros(3_333_333),
			Conversions: adsdomain.NewFloat("1.5"),
		},
	}

	first := NormalizeCampaign(row, "9", 1, time.Unix(0, 0))
	second := NormalizeCampaign(row, "9", 1, time.Unix(100, 0))
	second.LastSyncAt = first.LastSyncAt

	assert.Equal(t, first, second)
}

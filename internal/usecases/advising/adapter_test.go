package advising

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/llm"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/llm/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestExtractConfidence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "Valor explícito em inglês",
			text:     "Raise the bid on brand terms.\nConfidence: 85%",
			expected: 85,
		},
		{
			name:     "Valor explícito em português",
			text:     "Aumente o orçamento diário. Confiança: 70%",
			expected: 70,
		},
		{
			name:     "Valor explícito acima de 100 é limitado",
			text:     "Confidence level: 180%",
			expected: 100,
		},
		{
			name:     "Sem sinal algum devolve o valor neutro",
			text:     "Review the search terms report.",
			expected: 75,
		},
		{
			name:     "Palavra de certeza aumenta a confiança",
			text:     "You should definitely raise the bid.",
			expected: 80,
		},
		{
			name:     "Palavras de incerteza reduzem a confiança",
			text:     "Maybe you could lower the budget.",
			expected: 65,
		},
		{
			name:     "Muita incerteza fica no piso",
			text:     strings.Repeat("maybe ", 20),
			expected: 20,
		},
		{
			name:     "Muita certeza fica no teto",
			text:     strings.Repeat("clearly ", 20),
			expected: 95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractConfidence(tt.text))
		})
	}
}

func TestProviderAdapter_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenerator := mocks.NewMockGenerator(ctrl)
	mockGenerator.EXPECT().Name().Return(domain.ProviderAnthropic).AnyTimes()
	mockGenerator.EXPECT().Model().Return("claude-test").AnyTimes()

	campaign := &domain.Campaign{
		Name:        "Brand Search",
		ChannelType: domain.ChannelSearch,
		Status:      domain.CampaignStatusEnabled,
		DailyBudget: decimal.NewFromInt(50),
		Cost:        decimal.NewFromInt(120),
		TargetCPA:   decimal.NewNullDecimal(decimal.NewFromInt(20)),
	}

	tests := []struct {
		name     string
		timeout  time.Duration
		setup    func()
		validate func(t *testing.T, r domain.ProviderResponse)
	}{
		{
			name: "Resposta com confiança explícita",
			setup: func() {
				mockGenerator.EXPECT().Generate(gomock.Any(), systemPrompt, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, prompt string) (string, error) {
						assert.Contains(t, prompt, "Brand Search")
						assert.Contains(t, prompt, "Target CPA: 20.00")
						assert.True(t, strings.HasSuffix(prompt, "How do I lower my CPA?"))
						return "  Reduce bids on broad match.\nConfidence: 90%  ", nil
					})
			},
			validate: func(t *testing.T, r domain.ProviderResponse) {
				assert.NoError(t, r.Err)
				assert.True(t, r.Usable())
				assert.Equal(t, 90, r.Confidence)
				assert.Equal(t, "Reduce bids on broad match.\nConfidence: 90%", r.Text)
				assert.Equal(t, "claude-test", r.ModelID)
				assert.Equal(t, domain.ProviderAnthropic, r.Provider)
			},
		},
		{
			name: "Erro do provedor vira resposta com confiança zero",
			setup: func() {
				mockGenerator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", llm.ErrRateLimited)
			},
			validate: func(t *testing.T, r domain.ProviderResponse) {
				assert.False(t, r.Usable())
				assert.Equal(t, 0, r.Confidence)
				assert.True(t, errors.Is(r.Err, ErrTransientProvider))
				assert.Contains(t, r.Text, "anthropic unavailable")
			},
		},
		{
			name: "Texto vazio é tratado como falha",
			setup: func() {
				mockGenerator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return("   ", nil)
			},
			validate: func(t *testing.T, r domain.ProviderResponse) {
				assert.False(t, r.Usable())
				assert.True(t, errors.Is(r.Err, ErrTransientProvider))
			},
		},
		{
			name:    "Timeout do adaptador cancela a chamada",
			timeout: 20 * time.Millisecond,
			setup: func() {
				mockGenerator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, _ string, _ string) (string, error) {
						<-ctx.Done()
						return "", ctx.Err()
					})
			},
			validate: func(t *testing.T, r domain.ProviderResponse) {
				assert.False(t, r.Usable())
				assert.Contains(t, r.Err.Error(), context.DeadlineExceeded.Error())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			adapter := NewProviderAdapter(mockGenerator, tt.timeout)
			tt.validate(t, adapter.Generate(context.Background(), "How do I lower my CPA?", campaign))
		})
	}
}

func TestBuildPrompt_WithoutCampaign(t *testing.T) {
	assert.Equal(t, "Which campaigns should I pause?", buildPrompt("Which campaigns should I pause?", nil))
}

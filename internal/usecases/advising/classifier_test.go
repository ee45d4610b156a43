package advising

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.RecommendationType
	}{
		{
			name:     "Aumentar orçamento é acionável",
			text:     "Increase budget by 20% on the best performing ad group.",
			expected: domain.RecommendationActionable,
		},
		{
			name:     "Verbo em português é acionável",
			text:     "Recomendo pausar as palavras-chave sem conversão.",
			expected: domain.RecommendationActionable,
		},
		{
			name:     "Pedido de dados é esclarecimento",
			text:     "Please provide the conversion tracking setup before I can advise.",
			expected: domain.RecommendationClarification,
		},
		{
			name:     "Esclarecimento vence acionável",
			text:     "I need more information before you increase the budget.",
			expected: domain.RecommendationClarification,
		},
		{
			name:     "Monitorar vence acionável",
			text:     "Monitor the CTR for a week, then reduce bids if it drops.",
			expected: domain.RecommendationMonitor,
		},
		{
			name:     "Sem palavras-chave o padrão é monitor",
			text:     "The campaign looks healthy overall.",
			expected: domain.RecommendationMonitor,
		},
		{
			name:     "Palavra-chave só casa palavra inteira",
			text:     "Your address extensions look fine.",
			expected: domain.RecommendationMonitor,
		},
		{
			name:     "Maiúsculas não importam",
			text:     "REDUCE THE BID",
			expected: domain.RecommendationActionable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

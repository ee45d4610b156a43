package advising

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/llm"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
	"github.com/vfg2006/campaign-advisor-api/pkg/utils"
)

const (
	neutralConfidence   = 75
	keywordWeight       = 5
	minLexicalConfident = 20
	maxLexicalConfident = 95
)

const systemPrompt = `You are a senior Google Ads performance analyst.
Give concrete, prioritized optimization advice for the campaign described by the user.
End your answer with a line in the form "Confidence: NN%" stating how confident you are.`

var confidencePattern = regexp.MustCompile(`(?i)(?:confidence|confian(?:ç|c)a)\s*(?:level|nível|nivel)?\s*[:=]?\s*(\d{1,3})\s*%?`)

var (
	certaintyWords = []string{
		"definitely", "clearly", "certainly", "strongly", "confident", "undoubtedly", "always",
		"definitivamente", "claramente", "certamente", "fortemente", "confiante", "sempre",
	}
	uncertaintyWords = []string{
		"might", "maybe", "perhaps", "possibly", "uncertain", "unclear", "unsure", "could",
		"talvez", "possivelmente", "incerto", "provavelmente", "depende",
	}
)

// ProviderAdapter envolve um Generator e nunca falha: erros viram resposta com confiança zero
type ProviderAdapter struct {
	generator llm.Generator
	timeout   time.Duration
}

func NewProviderAdapter(generator llm.Generator, timeout time.Duration) *ProviderAdapter {
	return &ProviderAdapter{
		generator: generator,
		timeout:   timeout,
	}
}

func (a *ProviderAdapter) Name() domain.ProviderName { return a.generator.Name() }

func (a *ProviderAdapter) Model() string { return a.generator.Model() }

func (a *ProviderAdapter) Generate(ctx context.Context, prompt string, campaign *domain.Campaign) domain.ProviderResponse {
	text, latency, err := a.call(ctx, systemPrompt, buildPrompt(prompt, campaign))

	response := domain.ProviderResponse{
		Provider: a.Name(),
		ModelID:  a.Model(),
		Latency:  latency,
	}

	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"provider": a.Name().String(),
			"model":    a.Model(),
			"latency":  latency.String(),
			"error":    err.Error(),
		}).Warn("Provedor de IA falhou, resposta descartada do consenso")

		response.Err = fmt.Errorf("%w: %s", ErrTransientProvider, err.Error())
		response.Text = fmt.Sprintf("%s unavailable: %s", a.Name(), err.Error())
		return response
	}

	response.Text = text
	response.Confidence = ExtractConfidence(text)
	return response
}

// call aplica o timeout do adaptador e registra as métricas da chamada
func (a *ProviderAdapter) call(ctx context.Context, system, prompt string) (string, time.Duration, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := a.generator.Generate(ctx, system, prompt)
	latency := time.Since(started)

	metrics.ProviderLatency.WithLabelValues(a.Name().String()).Observe(latency.Seconds())

	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}

	if err != nil {
		metrics.ProviderCallsTotal.WithLabelValues(a.Name().String(), "error").Inc()
		return "", latency, err
	}

	metrics.ProviderCallsTotal.WithLabelValues(a.Name().String(), "success").Inc()
	return strings.TrimSpace(text), latency, nil
}

// ExtractConfidence procura um "confidence: NN%" explícito; sem ele, compara palavras
// de certeza e de incerteza; sem nenhum sinal, devolve 75
func ExtractConfidence(text string) int {
	if match := confidencePattern.FindStringSubmatch(text); match != nil {
		if value, err := strconv.Atoi(match[1]); err == nil {
			return utils.ClampPercent(value)
		}
	}

	words := wordCounts(text)
	certain := 0
	for _, w := range certaintyWords {
		certain += words[w]
	}

	uncertain := 0
	for _, w := range uncertaintyWords {
		uncertain += words[w]
	}

	if certain == 0 && uncertain == 0 {
		return neutralConfidence
	}

	score := neutralConfidence + keywordWeight*(certain-uncertain)
	return max(minLexicalConfident, min(maxLexicalConfident, score))
}

func buildPrompt(prompt string, campaign *domain.Campaign) string {
	if campaign == nil {
		return prompt
	}

	var b strings.Builder
	b.WriteString("Campaign context (last 7 days):\n")
	fmt.Fprintf(&b, "- Name: %s\n", campaign.Name)
	fmt.Fprintf(&b, "- Channel: %s\n", campaign.ChannelType)
	fmt.Fprintf(&b, "- Status: %s\n", campaign.Status)
	fmt.Fprintf(&b, "- Daily budget: %s\n", campaign.DailyBudget.StringFixed(2))
	fmt.Fprintf(&b, "- Impressions: %s, Clicks: %s, CTR: %s%%\n", campaign.Impressions.String(), campaign.Clicks.String(), campaign.CTR.StringFixed(2))
	fmt.Fprintf(&b, "- Cost: %s, Avg CPC: %s\n", campaign.Cost.StringFixed(2), campaign.AvgCPC.StringFixed(2))
	fmt.Fprintf(&b, "- Conversions: %s, Conversion value: %s, Conversion rate: %s%%\n",
		campaign.Conversions.StringFixed(2), campaign.ConversionValue.StringFixed(2), campaign.ConversionRate.StringFixed(2))

	if campaign.ActualCPA.Valid {
		fmt.Fprintf(&b, "- Actual CPA: %s\n", campaign.ActualCPA.Decimal.StringFixed(2))
	}
	if campaign.ActualROAS.Valid {
		fmt.Fprintf(&b, "- Actual ROAS: %s\n", campaign.ActualROAS.Decimal.StringFixed(2))
	}
	if campaign.TargetCPA.Valid {
		fmt.Fprintf(&b, "- Target CPA: %s\n", campaign.TargetCPA.Decimal.StringFixed(2))
	}
	if campaign.TargetROAS.Valid {
		fmt.Fprintf(&b, "- Target ROAS: %s\n", campaign.TargetROAS.Decimal.StringFixed(2))
	}
	if campaign.GoalDescription != nil && *campaign.GoalDescription != "" {
		fmt.Fprintf(&b, "- Owner goal: %s\n", *campaign.GoalDescription)
	}

	b.WriteString("\nQuestion:\n")
	b.WriteString(prompt)

	return b.String()
}

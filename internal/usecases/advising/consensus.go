package advising

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	minUsableResponses  = 2
	minAgreementWordLen = 4
	agreementMultiplier = 200
)

const synthesisSystemPrompt = `You consolidate optimization advice written by several AI analysts about the same Google Ads campaign.
Merge their points into one prioritized recommendation. Keep only advice that is consistent with the data.`

type ConsensusEngine struct {
	registry        *Registry
	defaultProvider domain.ProviderName
	joinTimeout     time.Duration
}

// NewConsensusEngine recebe o provedor de síntese; zero desativa a síntese
func NewConsensusEngine(registry *Registry, defaultProvider domain.ProviderName, joinTimeout time.Duration) *ConsensusEngine {
	return &ConsensusEngine{
		registry:        registry,
		defaultProvider: defaultProvider,
		joinTimeout:     joinTimeout,
	}
}

// GenerateWithConsensus consulta todos os provedores em paralelo, mede a concordância
// entre as respostas utilizáveis e sintetiza uma recomendação única. Respostas de
// provedores que falharam ou estouraram o tempo ficam fora da concordância e da
// confiança, mas seguem em Models e Responses.
func (e *ConsensusEngine) GenerateWithConsensus(ctx context.Context, prompt string, campaign *domain.Campaign) (*domain.ConsensusResult, error) {
	adapters := e.registry.Available()
	responses := e.fanOut(ctx, adapters, prompt, campaign)

	models := make([]string, 0, len(responses))
	usable := make([]domain.ProviderResponse, 0, len(responses))
	for _, r := range responses {
		models = append(models, r.ModelID)
		if r.Usable() {
			usable = append(usable, r)
		}
	}

	if len(usable) < minUsableResponses {
		metrics.ConsensusTotal.WithLabelValues("insufficient").Inc()
		log.ForContext(ctx).WithFields(log.Fields{
			"available": len(adapters),
			"usable":    len(usable),
		}).Warn("Respostas insuficientes para consenso")

		return nil, NewAdviceError(
			ErrInsufficientProviders,
			apiErrors.ErrInsufficientProviders,
			fmt.Sprintf("%d usable responses out of %d providers", len(usable), len(adapters)),
		)
	}

	texts := make([]string, 0, len(usable))
	for _, r := range usable {
		texts = append(texts, r.Text)
	}

	agreement := AgreementLevel(texts)
	confidence := ConsensusConfidence(usable, agreement)

	final, synthesized := e.synthesize(ctx, prompt, usable)

	metrics.ConsensusTotal.WithLabelValues("success").Inc()
	log.ForContext(ctx).WithFields(log.Fields{
		"providers":   len(adapters),
		"usable":      len(usable),
		"agreement":   agreement,
		"confidence":  confidence,
		"synthesized": synthesized,
	}).Info("Consenso entre provedores de IA gerado")

	return &domain.ConsensusResult{
		FinalRecommendation: final,
		Confidence:          confidence,
		AgreementLevel:      agreement,
		Models:              models,
		Responses:           responses,
		Synthesized:         synthesized,
	}, nil
}

// fanOut espera todos os adaptadores até o limite de junção; quem não terminou a tempo
// entra como timeout com confiança zero. As chamadas não são canceladas no meio.
func (e *ConsensusEngine) fanOut(ctx context.Context, adapters []*ProviderAdapter, prompt string, campaign *domain.Campaign) []domain.ProviderResponse {
	callCtx := context.WithoutCancel(ctx)

	var (
		mu       sync.Mutex
		joined   bool
		results  = make([]domain.ProviderResponse, len(adapters))
		finished = make([]bool, len(adapters))
		g        errgroup.Group
	)

	for i, adapter := range adapters {
		g.Go(func() error {
			response := adapter.Generate(callCtx, prompt, campaign)

			mu.Lock()
			defer mu.Unlock()
			if !joined {
				results[i] = response
				finished[i] = true
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	if e.joinTimeout > 0 {
		select {
		case <-done:
		case <-time.After(e.joinTimeout):
			log.ForContext(ctx).WithField("join_timeout", e.joinTimeout.String()).Warn("Tempo de junção do consenso esgotado")
		}
	} else {
		<-done
	}

	mu.Lock()
	defer mu.Unlock()
	joined = true

	for i, adapter := range adapters {
		if finished[i] {
			continue
		}
		results[i] = domain.ProviderResponse{
			Provider: adapter.Name(),
			ModelID:  adapter.Model(),
			Text:     fmt.Sprintf("%s timed out", adapter.Name()),
			Latency:  e.joinTimeout,
			Err:      fmt.Errorf("%w: %s", ErrTransientProvider, context.DeadlineExceeded.Error()),
		}
	}

	return results
}

// synthesize pede ao provedor padrão uma resposta consolidada; sem ele, ou se a chamada
// falhar, devolve a resposta de maior confiança (empate: ordem de declaração)
func (e *ConsensusEngine) synthesize(ctx context.Context, prompt string, usable []domain.ProviderResponse) (string, bool) {
	if adapter, ok := e.registry.Get(e.defaultProvider); ok {
		text, _, err := adapter.call(context.WithoutCancel(ctx), synthesisSystemPrompt, buildSynthesisPrompt(prompt, usable))
		if err == nil {
			return text, true
		}

		log.ForContext(ctx).WithFields(log.Fields{
			"provider": e.defaultProvider.String(),
			"error":    err.Error(),
		}).Warn("Falha na síntese do consenso, usando a resposta de maior confiança")
	}

	return bestResponse(usable).Text, false
}

func bestResponse(responses []domain.ProviderResponse) domain.ProviderResponse {
	best := responses[0]
	for _, r := range responses[1:] {
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	return best
}

func buildSynthesisPrompt(prompt string, responses []domain.ProviderResponse) string {
	var b strings.Builder
	b.WriteString("Original question:\n")
	b.WriteString(prompt)
	b.WriteString("\n\nIndividual answers:\n")

	for _, r := range responses {
		fmt.Fprintf(&b, "\n--- %s (confidence %d%%) ---\n%s\n", r.Provider, r.Confidence, r.Text)
	}

	b.WriteString("\nWrite one synthesized, prioritized recommendation.")
	return b.String()
}

// AgreementLevel é uma aproximação barata de concordância: fração das palavras distintas
// (mais de 3 letras) que aparecem em pelo menos duas respostas, vezes 200, limitada a 100.
// O consenso passa só os textos utilizáveis; textos de falha ou timeout não entram.
func AgreementLevel(texts []string) int {
	documentFrequency := make(map[string]int)

	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, word := range tokenize(text) {
			if utf8.RuneCountInString(word) < minAgreementWordLen {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			documentFrequency[word]++
		}
	}

	if len(documentFrequency) == 0 {
		return 0
	}

	shared := 0
	for _, count := range documentFrequency {
		if count >= 2 {
			shared++
		}
	}

	level := int(math.Round(float64(shared) / float64(len(documentFrequency)) * agreementMultiplier))
	return min(100, level)
}

// ConsensusConfidence é a média das confianças reduzida pela concordância
func ConsensusConfidence(usable []domain.ProviderResponse, agreement int) int {
	if len(usable) == 0 {
		return 0
	}

	total := 0
	for _, r := range usable {
		total += r.Confidence
	}

	mean := float64(total) / float64(len(usable))
	return int(math.Round(mean * float64(agreement) / 100))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func wordCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, word := range tokenize(text) {
		counts[word]++
	}
	return counts
}

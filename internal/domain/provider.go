package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProviderName enumera os provedores de IA suportados, na ordem de declaração
type ProviderName int

const (
	ProviderOpenAI ProviderName = iota + 1
	ProviderAnthropic
	ProviderGemini
)

// AllProviders segue a ordem de declaração, usada como critério de desempate
var AllProviders = []ProviderName{ProviderOpenAI, ProviderAnthropic, ProviderGemini}

func (p ProviderName) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

func ParseProviderName(raw string) (ProviderName, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range AllProviders {
		if p.String() == name {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown provider: %q", raw)
}

// ProviderResponse é a resposta uniforme de um provedor. Não é persistida.
type ProviderResponse struct {
	Provider   ProviderName  `json:"-"`
	ModelID    string        `json:"model"`
	Text       string        `json:"text"`
	Confidence int           `json:"confidence"`
	Latency    time.Duration `json:"latency"`
	Err        error         `json:"-"`
}

// Usable indica se a resposta entra no cálculo de consenso
func (r ProviderResponse) Usable() bool {
	return r.Err == nil && r.Confidence > 0
}

type ConsensusResult struct {
	FinalRecommendation string             `json:"final_recommendation"`
	Confidence          int                `json:"confidence"`
	AgreementLevel      int                `json:"agreement_level"`
	Models              []string           `json:"models"`
	Responses           []ProviderResponse `json:"-"`
	Synthesized         bool               `json:"synthesized"`
}

type ConsensusResponse struct {
	ID                  string             `json:"id"`
	FinalRecommendation string             `json:"finalRecommendation"`
	Confidence          int                `json:"confidence"`
	AgreementLevel      int                `json:"agreementLevel"`
	Models              []string           `json:"models"`
	Type                RecommendationType `json:"type"`
}

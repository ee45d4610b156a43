package advising

import (
	"regexp"
	"strings"

	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

var (
	clarificationKeywords = []string{
		"clarify", "clarification", "more information", "more data", "more details", "need more",
		"please provide", "can you provide", "could you provide", "not enough data", "insufficient data",
		"esclarecer", "esclarecimento", "mais dados", "mais detalhes", "preciso de mais",
		"poderia informar", "dados insuficientes",
	}
	monitorKeywords = []string{
		"monitor", "monitoring", "keep an eye", "wait", "observe", "track", "tracking",
		"no changes", "hold", "stable", "continue running",
		"monitorar", "monitoramento", "acompanhar", "aguardar", "observar", "manter", "estável",
	}
	actionableKeywords = []string{
		"increase", "decrease", "reduce", "raise", "lower", "pause", "add", "remove", "adjust",
		"change", "shift", "reallocate", "test",
		"aumentar", "aumente", "reduzir", "reduza", "diminuir", "pausar", "adicionar",
		"remover", "ajustar", "ajuste", "alterar", "realocar", "testar",
	}
)

type keywordRule struct {
	kind    domain.RecommendationType
	pattern *regexp.Regexp
}

// A ordem importa: a primeira regra com acerto vence
var classificationRules = []keywordRule{
	{domain.RecommendationClarification, keywordPattern(clarificationKeywords)},
	{domain.RecommendationMonitor, keywordPattern(monitorKeywords)},
	{domain.RecommendationActionable, keywordPattern(actionableKeywords)},
}

// Classify nunca devolve actionable por padrão: sem acerto, a recomendação é monitor
func Classify(text string) domain.RecommendationType {
	lower := strings.ToLower(text)

	for _, rule := range classificationRules {
		if rule.pattern.MatchString(lower) {
			return rule.kind
		}
	}

	return domain.RecommendationMonitor
}

// keywordPattern casa palavras inteiras, inclusive com letras acentuadas
func keywordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

package advising

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/llm"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

// Registry associa cada provedor da enumeração ao seu adaptador.
// É montado uma vez na inicialização, só com os provedores que têm credencial.
type Registry struct {
	adapters map[domain.ProviderName]*ProviderAdapter
}

func NewRegistry(timeout time.Duration, generators ...llm.Generator) *Registry {
	r := &Registry{adapters: make(map[domain.ProviderName]*ProviderAdapter, len(generators))}

	for _, g := range generators {
		if g == nil {
			continue
		}

		if _, dup := r.adapters[g.Name()]; dup {
			logrus.WithField("provider", g.Name().String()).Warn("Provedor de IA registrado mais de uma vez, mantendo o primeiro")
			continue
		}

		r.adapters[g.Name()] = NewProviderAdapter(g, timeout)
	}

	return r
}

func (r *Registry) Get(name domain.ProviderName) (*ProviderAdapter, bool) {
	adapter, ok := r.adapters[name]
	return adapter, ok
}

// Available devolve os adaptadores na ordem de declaração da enumeração
func (r *Registry) Available() []*ProviderAdapter {
	available := make([]*ProviderAdapter, 0, len(r.adapters))
	for _, name := range domain.AllProviders {
		if adapter, ok := r.adapters[name]; ok {
			available = append(available, adapter)
		}
	}
	return available
}

func (r *Registry) Len() int {
	return len(r.adapters)
}

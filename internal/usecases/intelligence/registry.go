package intelligence

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Tenant agrupa o serviço de inteligência e a invalidação em tempo real de um tenant
type Tenant struct {
	*Service
	invalidator *Invalidator
}

// Watch observa alterações do ano informado; sem change feed configurado não faz nada
func (t *Tenant) Watch(year int) error {
	if t.invalidator == nil {
		return nil
	}
	return t.invalidator.Watch(year)
}

// EnsureWatching observa o ano apenas se o tenant ainda não observa nenhum,
// para não trocar o ano escolhido numa consulta de meta
func (t *Tenant) EnsureWatching(year int) error {
	if t.invalidator == nil || t.invalidator.Year() != 0 {
		return nil
	}
	return t.invalidator.Watch(year)
}

// Registry mantém uma instância de serviço por tenant, criada sob demanda
type Registry struct {
	ctx     context.Context
	source  AggregateSource
	feed    ChangeFeed
	options []Option

	mu      sync.Mutex
	tenants map[string]*Tenant
}

// NewRegistry cria o registro de tenants. feed pode ser nil quando o change feed está desabilitado.
func NewRegistry(ctx context.Context, source AggregateSource, feed ChangeFeed, opts ...Option) *Registry {
	return &Registry{
		ctx:     ctx,
		source:  source,
		feed:    feed,
		options: opts,
		tenants: make(map[string]*Tenant),
	}
}

// Get retorna o serviço do tenant, criando-o na primeira chamada
func (r *Registry) Get(tenantID string) (*Tenant, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if tenant, ok := r.tenants[tenantID]; ok {
		return tenant, nil
	}

	service := NewService(tenantID, r.source, r.options...)
	tenant := &Tenant{Service: service}
	if r.feed != nil {
		tenant.invalidator = NewInvalidator(r.ctx, r.feed, service)
	}

	r.tenants[tenantID] = tenant

	logrus.WithField("tenant_id", tenantID).Info("Serviço de inteligência criado para o tenant")

	return tenant, nil
}

// TenantIDs lista os tenants já atendidos, em ordem
func (r *Registry) TenantIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.tenants))
	for id := range r.tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Close cancela as assinaturas de todos os tenants
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tenant := range r.tenants {
		if tenant.invalidator != nil {
			tenant.invalidator.Close()
		}
	}
}

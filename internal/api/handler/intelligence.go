package handler

import (
	"net/http"
	"time"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/ledgerline/crm-intelligence-api/pkg/apiErrors"
	"github.com/ledgerline/crm-intelligence-api/pkg/log"
)

// MonthlyTargetRequest é o corpo de PUT /v1/targets/monthly
type MonthlyTargetRequest struct {
	Amount float64 `json:"amount"`
}

// ensureLoaded busca os agregados na primeira consulta ou quando o estado passou de maxAge,
// e passa a observar o ano corrente. maxAge zero desliga a expiração.
func ensureLoaded(r *http.Request, tenant *intelligence.Tenant, maxAge time.Duration) error {
	if err := tenant.EnsureWatching(time.Now().Year()); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Não foi possível observar alterações do tenant")
	}

	snapshot := tenant.Snapshot()
	if snapshot.IsLoading {
		return nil
	}

	if snapshot.LastUpdated != nil && (maxAge <= 0 || time.Since(*snapshot.LastUpdated) < maxAge) {
		return nil
	}

	return tenant.FetchBusinessPulse(r.Context())
}

// GetDashboard retorna o estado atual com insights e ações derivados
func GetDashboard(provider TenantProvider, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		if err := ensureLoaded(r, tenant, maxAge); err != nil {
			writeServiceError(w, r, err, "Erro ao carregar agregados")
			return
		}

		writeJSON(w, r, http.StatusOK, tenant.Snapshot())
	}
}

// RefreshIntelligence força uma nova busca dos quatro agregados
func RefreshIntelligence(provider TenantProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		if err := tenant.FetchBusinessPulse(r.Context()); err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar agregados")
			return
		}

		writeJSON(w, r, http.StatusOK, tenant.Snapshot())
	}
}

func GetInsights(provider TenantProvider, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		if err := ensureLoaded(r, tenant, maxAge); err != nil {
			writeServiceError(w, r, err, "Erro ao carregar agregados")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string][]string{"insights": tenant.Insights()})
	}
}

func GetActions(provider TenantProvider, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		if err := ensureLoaded(r, tenant, maxAge); err != nil {
			writeServiceError(w, r, err, "Erro ao carregar agregados")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string][]domain.PriorityAction{"actions": tenant.Actions()})
	}
}

// SetMonthlyTarget grava a meta mensal e devolve o estado atualizado
func SetMonthlyTarget(provider TenantProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		var req MonthlyTargetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if err := tenant.SetMonthlyTarget(r.Context(), req.Amount); err != nil {
			writeServiceError(w, r, err, "Erro ao definir meta mensal")
			return
		}

		writeJSON(w, r, http.StatusOK, tenant.Snapshot())
	}
}

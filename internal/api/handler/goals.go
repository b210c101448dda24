package handler

import (
	"net/http"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/planning"
	"github.com/ledgerline/crm-intelligence-api/pkg/apiErrors"
	"github.com/ledgerline/crm-intelligence-api/pkg/log"
)

// YearlyGoalRequest é o corpo de PUT /v1/goals/:year
type YearlyGoalRequest struct {
	Amount    float64              `json:"amount"`
	Breakdown domain.GoalBreakdown `json:"breakdown,omitempty"`
}

// GoalProgressResponse junta o progresso da meta e a trajetória derivada
type GoalProgressResponse struct {
	Progress   *domain.GoalProgress   `json:"progress"`
	Trajectory *domain.GoalTrajectory `json:"trajectory"`
}

// watchYear passa a observar alterações do ano consultado; falha não impede a resposta
func watchYear(r *http.Request, tenant *intelligence.Tenant, year int) {
	if err := tenant.Watch(year); err != nil {
		log.ForContext(r.Context()).WithError(err).WithField("year", year).Warn("Não foi possível observar alterações do ano")
	}
}

// GetGoalProgress retorna o progresso da meta anual do ano informado
func GetGoalProgress(provider TenantProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeServiceError(w, r, err, "Ano inválido")
			return
		}

		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		progress, err := tenant.GoalProgress(r.Context(), year)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar progresso da meta")
			return
		}

		watchYear(r, tenant, year)

		if progress == nil {
			writeServiceError(w, r, intelligence.ErrGoalNotAvailable, "Nenhum progresso de meta para o ano")
			return
		}

		writeJSON(w, r, http.StatusOK, GoalProgressResponse{
			Progress:   progress,
			Trajectory: planning.ComputeTrajectory(progress),
		})
	}
}

// SetYearlyGoal sobrescreve a meta anual e devolve o progresso relido
func SetYearlyGoal(provider TenantProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeServiceError(w, r, err, "Ano inválido")
			return
		}

		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		var req YearlyGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if err := tenant.SetYearlyGoal(r.Context(), year, req.Amount, req.Breakdown); err != nil {
			writeServiceError(w, r, err, "Erro ao definir meta anual")
			return
		}

		// A releitura pode ter falhado; nesse caso o progresso é buscado de novo aqui
		progress, ok := tenant.LastGoalProgress(year)
		if !ok {
			progress, err = tenant.GoalProgress(r.Context(), year)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Meta gravada, mas o progresso não pôde ser relido")
			}
		}

		writeJSON(w, r, http.StatusOK, GoalProgressResponse{
			Progress:   progress,
			Trajectory: planning.ComputeTrajectory(progress),
		})
	}
}

// GetGoalCockpit retorna a visão do cockpit: estado, trajetória e ritmo necessário
func GetGoalCockpit(provider TenantProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeServiceError(w, r, err, "Ano inválido")
			return
		}

		tenant, ok := tenantFromRequest(w, r, provider)
		if !ok {
			return
		}

		progress, err := tenant.GoalProgress(r.Context(), year)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar progresso da meta")
			return
		}

		watchYear(r, tenant, year)

		writeJSON(w, r, http.StatusOK, planning.BuildCockpit(year, progress))
	}
}

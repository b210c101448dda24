package backend

import (
	"context"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_rpc_caller.go -package=mocks

// Procedimentos armazenados expostos pelo backend
const (
	ProcBusinessPulse       = "get_business_pulse"
	ProcSalespersonRankings = "get_salesperson_rankings"
	ProcCityPerformance     = "get_city_performance"
	ProcIntelligenceReport  = "get_intelligence_report"
	ProcYearlyGoalProgress  = "get_yearly_goal_progress"
	ProcSetMonthlyTarget    = "set_monthly_target"
	ProcSetYearlyGoal       = "set_yearly_goal"
)

// Parâmetros nomeados dos procedimentos
const (
	ParamTenantID  = "p_tenant_id"
	ParamYear      = "p_year"
	ParamAmount    = "p_amount"
	ParamBreakdown = "p_breakdown"
)

// RPCCaller executa um procedimento do backend, seja por HTTP ou direto no banco
type RPCCaller interface {
	// Call executa o procedimento e devolve o JSON da resposta
	Call(ctx context.Context, procedure string, params map[string]any) ([]byte, error)

	// Exec executa um procedimento sem retorno
	Exec(ctx context.Context, procedure string, params map[string]any) error
}

// BackendIntegrator traduz as respostas dos procedimentos nos registros tipados do domínio
type BackendIntegrator struct {
	caller RPCCaller
}

func New(caller RPCCaller) *BackendIntegrator {
	return &BackendIntegrator{
		caller: caller,
	}
}

func (b *BackendIntegrator) GetBusinessPulse(ctx context.Context, tenantID string) (*domain.BusinessPulse, error) {
	payload, err := b.call(ctx, ProcBusinessPulse, tenantParams(tenantID))
	if err != nil {
		return nil, err
	}

	var pulse domain.BusinessPulse
	found, err := decodeOne(ProcBusinessPulse, payload, &pulse)
	if err != nil || !found {
		return nil, err
	}

	return &pulse, nil
}

func (b *BackendIntegrator) GetSalespersonRankings(ctx context.Context, tenantID string) ([]domain.SalespersonPerformance, error) {
	payload, err := b.call(ctx, ProcSalespersonRankings, tenantParams(tenantID))
	if err != nil {
		return nil, err
	}

	return decodeList[domain.SalespersonPerformance](ProcSalespersonRankings, payload)
}

func (b *BackendIntegrator) GetCityPerformance(ctx context.Context, tenantID string) ([]domain.GeoInsight, error) {
	payload, err := b.call(ctx, ProcCityPerformance, tenantParams(tenantID))
	if err != nil {
		return nil, err
	}

	return decodeList[domain.GeoInsight](ProcCityPerformance, payload)
}

func (b *BackendIntegrator) GetIntelligenceReport(ctx context.Context, tenantID string) (*domain.IntelligenceReport, error) {
	payload, err := b.call(ctx, ProcIntelligenceReport, tenantParams(tenantID))
	if err != nil {
		return nil, err
	}

	var report domain.IntelligenceReport
	found, err := decodeOne(ProcIntelligenceReport, payload, &report)
	if err != nil || !found {
		return nil, err
	}

	return &report, nil
}

func (b *BackendIntegrator) GetYearlyGoalProgress(ctx context.Context, tenantID string, year int) (*domain.GoalProgress, error) {
	params := tenantParams(tenantID)
	params[ParamYear] = year

	payload, err := b.call(ctx, ProcYearlyGoalProgress, params)
	if err != nil {
		return nil, err
	}

	var progress domain.GoalProgress
	found, err := decodeOne(ProcYearlyGoalProgress, payload, &progress)
	if err != nil || !found {
		return nil, err
	}

	return &progress, nil
}

func (b *BackendIntegrator) SetMonthlyTarget(ctx context.Context, tenantID string, amount float64) error {
	params := tenantParams(tenantID)
	params[ParamAmount] = amount

	if err := b.caller.Exec(ctx, ProcSetMonthlyTarget, params); err != nil {
		return errors.Wrapf(err, "erro ao executar %s", ProcSetMonthlyTarget)
	}

	return nil
}

func (b *BackendIntegrator) SetYearlyGoal(ctx context.Context, tenantID string, goal domain.YearlyGoalRequest) error {
	params := tenantParams(tenantID)
	params[ParamYear] = goal.Year
	params[ParamAmount] = goal.Amount
	if len(goal.Breakdown) > 0 {
		params[ParamBreakdown] = goal.Breakdown
	}

	if err := b.caller.Exec(ctx, ProcSetYearlyGoal, params); err != nil {
		return errors.Wrapf(err, "erro ao executar %s", ProcSetYearlyGoal)
	}

	return nil
}

func (b *BackendIntegrator) call(ctx context.Context, procedure string, params map[string]any) ([]byte, error) {
	payload, err := b.caller.Call(ctx, procedure, params)
	if err != nil {
		logrus.WithError(err).WithField("procedure", procedure).Debug("Falha ao chamar procedimento do backend")
		return nil, errors.Wrapf(err, "erro ao chamar %s", procedure)
	}
	return payload, nil
}

func tenantParams(tenantID string) map[string]any {
	return map[string]any{ParamTenantID: tenantID}
}

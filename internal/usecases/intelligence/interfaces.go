package intelligence

import (
	"context"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// AggregateSource define os procedimentos remotos que entregam os agregados do backend
type AggregateSource interface {
	// GetBusinessPulse obtém o retrato das métricas do período corrente
	GetBusinessPulse(ctx context.Context, tenantID string) (*domain.BusinessPulse, error)

	// GetSalespersonRankings obtém o ranking de vendedores do mês
	GetSalespersonRankings(ctx context.Context, tenantID string) ([]domain.SalespersonPerformance, error)

	// GetCityPerformance obtém o desempenho por cidade do mês
	GetCityPerformance(ctx context.Context, tenantID string) ([]domain.GeoInsight, error)

	// GetIntelligenceReport obtém o relatório de riscos e oportunidades
	GetIntelligenceReport(ctx context.Context, tenantID string) (*domain.IntelligenceReport, error)

	// GetYearlyGoalProgress obtém o progresso da meta anual de um ano fiscal
	GetYearlyGoalProgress(ctx context.Context, tenantID string, year int) (*domain.GoalProgress, error)

	// SetMonthlyTarget define a meta de vendas do mês corrente
	SetMonthlyTarget(ctx context.Context, tenantID string, amount float64) error

	// SetYearlyGoal define (ou sobrescreve) a meta anual
	SetYearlyGoal(ctx context.Context, tenantID string, goal domain.YearlyGoalRequest) error
}

// ChangeHandler recebe os eventos entregues por uma assinatura
type ChangeHandler func(event domain.ChangeEvent)

// Subscription é uma assinatura ativa no change feed
type Subscription interface {
	Unsubscribe() error
}

// ChangeFeed entrega notificações de alteração de linhas das tabelas do backend
type ChangeFeed interface {
	Subscribe(ctx context.Context, channel string, tables []string, handler ChangeHandler) (Subscription, error)
}

package domain

import (
	"fmt"
	"time"
)

// GoalProgress é o cálculo de meta anual versus realizado para um ano fiscal
type GoalProgress struct {
	Year                 int                `json:"year"`
	TargetAmount         float64            `json:"target_amount"`
	ActualRevenue        float64            `json:"actual_revenue"`
	ProgressPercentage   float64            `json:"progress_percentage"`
	DaysElapsed          int                `json:"days_elapsed"`
	DaysRemaining        int                `json:"days_remaining"`
	RequiredDailyRunRate float64            `json:"required_daily_run_rate"`
	IsAchieved           bool               `json:"is_achieved"`
	IsExceeded           bool               `json:"is_exceeded"`
	FiscalYearStart      string             `json:"fiscal_year_start"` // Formato yyyy-mm-dd
	FiscalYearEnd        string             `json:"fiscal_year_end"`   // Formato yyyy-mm-dd
	MonthlyBreakdown     []MonthlyGoalEntry `json:"monthly_breakdown,omitempty"`
}

// MonthlyGoalEntry é a linha mensal do acompanhamento da meta (Month no formato yyyy-mm)
type MonthlyGoalEntry struct {
	Month  string  `json:"month"`
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
}

// Validate verifica os campos obrigatórios da resposta de progresso
func (g *GoalProgress) Validate() error {
	if g.Year <= 0 {
		return fmt.Errorf("ano inválido: %d", g.Year)
	}
	if g.DaysElapsed < 0 || g.DaysRemaining < 0 {
		return fmt.Errorf("contagem de dias negativa: elapsed=%d remaining=%d", g.DaysElapsed, g.DaysRemaining)
	}
	if g.FiscalYearStart != "" {
		if _, err := time.Parse(time.DateOnly, g.FiscalYearStart); err != nil {
			return fmt.Errorf("fiscal_year_start inválido: %w", err)
		}
	}
	if g.FiscalYearEnd != "" {
		if _, err := time.Parse(time.DateOnly, g.FiscalYearEnd); err != nil {
			return fmt.Errorf("fiscal_year_end inválido: %w", err)
		}
	}
	return nil
}

// HasGoal indica se existe uma meta definida para o ano
func (g *GoalProgress) HasGoal() bool {
	return g != nil && g.TargetAmount > 0
}

// TotalDays retorna o número de dias do ano fiscal considerado no cálculo
func (g *GoalProgress) TotalDays() int {
	return g.DaysElapsed + g.DaysRemaining
}

// GoalBreakdown é a distribuição mensal opcional de uma meta anual
type GoalBreakdown map[string]float64

// YearlyGoalRequest é o corpo enviado ao procedimento set-yearly-goal
type YearlyGoalRequest struct {
	Year      int           `json:"year"`
	Amount    float64       `json:"amount"`
	Breakdown GoalBreakdown `json:"breakdown,omitempty"`
}

type TrajectoryStatus string

const (
	TrajectoryAhead    TrajectoryStatus = "ahead"
	TrajectoryOnTrack  TrajectoryStatus = "on-track"
	TrajectoryAtRisk   TrajectoryStatus = "at-risk"
	TrajectoryCritical TrajectoryStatus = "critical"
)

type TrajectoryTrend string

const (
	TrendAccelerating TrajectoryTrend = "accelerating"
	TrendSteady       TrajectoryTrend = "steady"
	TrendDecelerating TrajectoryTrend = "decelerating"
	TrendVolatile     TrajectoryTrend = "volatile"
)

// GoalTrajectory é a projeção derivada de se a meta anual será atingida no ritmo atual
type GoalTrajectory struct {
	Status              TrajectoryStatus `json:"status"`
	Trend               TrajectoryTrend  `json:"trend"`
	ProjectedEndRevenue float64          `json:"projected_end_revenue"`
	Shortfall           float64          `json:"shortfall"` // Negativo = excedente
	ConfidenceScore     int              `json:"confidence_score"`
}

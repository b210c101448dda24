// Package planning deriva a trajetória e a visão de cockpit da meta anual
package planning

import (
	"math"
	"sort"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
)

// Limites da razão projetado/meta para cada status
const (
	AheadRatio   = 1.05
	OnTrackRatio = 0.95
	AtRiskRatio  = 0.80
)

const (
	// TrendWindow é o número de meses com realizado usados para a tendência
	TrendWindow = 3

	// TrendChangeThreshold é a variação mensal que caracteriza aceleração ou desaceleração
	TrendChangeThreshold = 0.10

	// VolatilityThreshold é o coeficiente de variação acima do qual a série é volátil
	VolatilityThreshold = 0.5

	// VolatileConfidenceFactor reduz a confiança quando a série é volátil
	VolatileConfidenceFactor = 0.6
)

// ComputeTrajectory projeta o faturamento do fim do ano fiscal mantendo o ritmo diário atual
func ComputeTrajectory(progress *domain.GoalProgress) *domain.GoalTrajectory {
	if progress == nil {
		return nil
	}

	elapsed := math.Max(1, float64(progress.DaysElapsed))
	dailyRate := progress.ActualRevenue / elapsed
	projected := progress.ActualRevenue + dailyRate*float64(progress.DaysRemaining)

	trend := computeTrend(progress.MonthlyBreakdown)

	return &domain.GoalTrajectory{
		Status:              statusFor(projected, progress.TargetAmount),
		Trend:               trend,
		ProjectedEndRevenue: projected,
		Shortfall:           progress.TargetAmount - projected,
		ConfidenceScore:     confidenceScore(progress, trend),
	}
}

func statusFor(projected, target float64) domain.TrajectoryStatus {
	if target <= 0 {
		return domain.TrajectoryOnTrack
	}

	ratio := projected / target
	switch {
	case ratio >= AheadRatio:
		return domain.TrajectoryAhead
	case ratio >= OnTrackRatio:
		return domain.TrajectoryOnTrack
	case ratio >= AtRiskRatio:
		return domain.TrajectoryAtRisk
	default:
		return domain.TrajectoryCritical
	}
}

// computeTrend analisa as variações mensais dos últimos meses com realizado
func computeTrend(breakdown []domain.MonthlyGoalEntry) domain.TrajectoryTrend {
	months := make([]domain.MonthlyGoalEntry, 0, len(breakdown))
	for _, entry := range breakdown {
		if entry.Actual > 0 {
			months = append(months, entry)
		}
	}

	sort.SliceStable(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})

	if len(months) > TrendWindow {
		months = months[len(months)-TrendWindow:]
	}

	if len(months) < 2 {
		return domain.TrendSteady
	}

	changes := make([]float64, 0, len(months)-1)
	for i := 1; i < len(months); i++ {
		changes = append(changes, months[i].Actual/months[i-1].Actual-1)
	}

	if hasMixedSigns(changes) && coefficientOfVariation(changes) > VolatilityThreshold {
		return domain.TrendVolatile
	}

	last := changes[len(changes)-1]
	switch {
	case last > TrendChangeThreshold:
		return domain.TrendAccelerating
	case last < -TrendChangeThreshold:
		return domain.TrendDecelerating
	default:
		return domain.TrendSteady
	}
}

func hasMixedSigns(values []float64) bool {
	var positive, negative bool
	for _, v := range values {
		if v > 0 {
			positive = true
		}
		if v < 0 {
			negative = true
		}
	}
	return positive && negative
}

// coefficientOfVariation usa o desvio padrão populacional; média zero resulta em +Inf
func coefficientOfVariation(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(values)))

	if mean == 0 {
		return math.Inf(1)
	}
	return stdDev / math.Abs(mean)
}

func confidenceScore(progress *domain.GoalProgress, trend domain.TrajectoryTrend) int {
	total := progress.TotalDays()
	if total <= 0 {
		return 0
	}

	score := float64(progress.DaysElapsed) / float64(total) * 100
	if trend == domain.TrendVolatile {
		score *= VolatileConfidenceFactor
	}

	return int(math.Round(math.Min(100, math.Max(0, score))))
}

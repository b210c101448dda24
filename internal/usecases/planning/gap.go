package planning

import (
	"math"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/pkg/utils"
)

const (
	DaysPerWeek  = 7
	DaysPerMonth = 30
)

// Gap é o valor que ainda falta para a meta, dividido pelo restante do ano fiscal
type Gap struct {
	Remaining          float64 `json:"remaining"`
	PerMonth           float64 `json:"per_month"`
	PerWeek            float64 `json:"per_week"`
	PerDay             float64 `json:"per_day"`
	RemainingFormatted string  `json:"remaining_formatted"`
	PerMonthFormatted  string  `json:"per_month_formatted"`
	PerWeekFormatted   string  `json:"per_week_formatted"`
	PerDayFormatted    string  `json:"per_day_formatted"`
}

// GapBreakdown divide o que falta para a meta em valores por mês, semana e dia,
// arredondados em centavos. Retorna nil quando não há meta definida.
func GapBreakdown(progress *domain.GoalProgress) *Gap {
	if !progress.HasGoal() {
		return nil
	}

	remaining := math.Max(0, progress.TargetAmount-progress.ActualRevenue)
	days := math.Max(1, float64(progress.DaysRemaining))

	perDay := remaining / days
	perWeek := math.Min(remaining, perDay*DaysPerWeek)
	perMonth := math.Min(remaining, perDay*DaysPerMonth)

	return &Gap{
		Remaining:          utils.RoundWithTwoDecimalPlace(remaining),
		PerMonth:           utils.RoundWithTwoDecimalPlace(perMonth),
		PerWeek:            utils.RoundWithTwoDecimalPlace(perWeek),
		PerDay:             utils.RoundWithTwoDecimalPlace(perDay),
		RemainingFormatted: utils.FormatCompactINROneDecimalK(remaining),
		PerMonthFormatted:  utils.FormatCompactINROneDecimalK(perMonth),
		PerWeekFormatted:   utils.FormatCompactINROneDecimalK(perWeek),
		PerDayFormatted:    utils.FormatCompactINROneDecimalK(perDay),
	}
}

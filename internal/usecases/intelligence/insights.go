package intelligence

import (
	"fmt"
	"math"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/pkg/utils"
)

// AssumedWorkingDaysPerMonth é a aproximação de dias úteis usada nas projeções de ritmo diário.
// Não considera calendário nem feriados.
const AssumedWorkingDaysPerMonth = 22

// Faixas de progresso da meta mensal
const (
	targetAchievedPercent = 100
	targetClosePercent    = 80
)

// GenerateInsights gera as observações do pulse na ordem fixa das regras.
// dayOfMonth é o dia corrente do mês, injetado para manter a função determinística.
func GenerateInsights(pulse *domain.BusinessPulse, dayOfMonth int) []string {
	insights := make([]string, 0, 8)
	if pulse == nil {
		return insights
	}

	remaining := pulse.RemainingToTarget()
	progress := targetProgress(pulse)
	dailyRate := requiredDailyRunRate(remaining, dayOfMonth)

	switch {
	case progress >= targetAchievedPercent:
		insights = append(insights, fmt.Sprintf(
			"Monthly target achieved! You are %s above target at %.0f%% of goal.",
			utils.FormatCompactINR(pulse.RevenueMTD-pulse.MonthlySalesTarget), progress,
		))
	case progress >= targetClosePercent:
		insights = append(insights, fmt.Sprintf(
			"You are at %.0f%% of the monthly target. Close the gap with %s in sales per day.",
			progress, utils.FormatCompactINR(dailyRate),
		))
	default:
		insights = append(insights, fmt.Sprintf(
			"Revenue is at %.0f%% of the monthly target. Accelerate: %s per day is needed to get there.",
			progress, utils.FormatCompactINR(dailyRate),
		))
	}

	if pulse.AvgDealValue > 0 {
		dealsNeeded := int(math.Max(0, math.Ceil(remaining/pulse.AvgDealValue)))
		insights = append(insights, fmt.Sprintf(
			"With an average deal of %s, you need %d more deals to reach the target.",
			utils.FormatCompactINR(pulse.AvgDealValue), dealsNeeded,
		))
	}

	if pulse.PendingQuotesCount > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d pending quotes worth %s are waiting for follow-up.",
			pulse.PendingQuotesCount, utils.FormatCompactINR(pulse.PendingQuotesValue),
		))
	}

	if pulse.TopCity != "" {
		insights = append(insights, fmt.Sprintf("%s is your strongest market this month.", pulse.TopCity))
	}

	if pulse.UnderservedCity != "" && pulse.UnderservedCity != pulse.TopCity {
		insights = append(insights, fmt.Sprintf(
			"Opportunity: %s is underserved and has room to grow.", pulse.UnderservedCity,
		))
	}

	if pulse.TopPerformerName != "" {
		insights = append(insights, fmt.Sprintf("%s is leading the sales team this month.", pulse.TopPerformerName))
	}

	if pulse.NeedsCoachingName != "" && pulse.NeedsCoachingName != pulse.TopPerformerName {
		insights = append(insights, fmt.Sprintf(
			"%s may need coaching to improve conversions.", pulse.NeedsCoachingName,
		))
	}

	if pulse.TotalReceivables > pulse.CashReserves {
		insights = append(insights, fmt.Sprintf(
			"Cash flow alert: receivables of %s exceed cash reserves of %s. Prioritize collections.",
			utils.FormatCompactINR(pulse.TotalReceivables), utils.FormatCompactINR(pulse.CashReserves),
		))
	}

	return insights
}

// targetProgress retorna o percentual da meta mensal atingido (0 quando não há meta)
func targetProgress(pulse *domain.BusinessPulse) float64 {
	if pulse.MonthlySalesTarget == 0 {
		return 0
	}
	return pulse.RevenueMTD / pulse.MonthlySalesTarget * 100
}

// requiredDailyRunRate divide o que falta pelos dias úteis restantes (no mínimo 1)
func requiredDailyRunRate(remaining float64, dayOfMonth int) float64 {
	daysLeft := AssumedWorkingDaysPerMonth - dayOfMonth
	if daysLeft < 1 {
		daysLeft = 1
	}
	return remaining / float64(daysLeft)
}

package intelligence

import (
	"fmt"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/pkg/utils"
)

// ReceivablesAlertThreshold é o valor de contas a receber a partir do qual a cobrança vira urgente
const ReceivablesAlertThreshold = 50000

// GenerateActions gera as ações prioritárias do pulse.
// A prioridade segue a ordem das regras e só avança quando uma regra dispara (1..k sem lacunas).
func GenerateActions(pulse *domain.BusinessPulse) []domain.PriorityAction {
	actions := make([]domain.PriorityAction, 0, 5)
	if pulse == nil {
		return actions
	}

	add := func(actionType domain.ActionType, text string) {
		actions = append(actions, domain.PriorityAction{
			Priority: len(actions) + 1,
			Action:   text,
			Type:     actionType,
		})
	}

	if pulse.PendingQuotesCount > 0 {
		add(domain.ActionUrgent, fmt.Sprintf(
			"Follow up on %d pending quotes worth %s",
			pulse.PendingQuotesCount, utils.FormatCompactINR(pulse.PendingQuotesValue),
		))
	}

	if pulse.TotalReceivables > ReceivablesAlertThreshold {
		add(domain.ActionUrgent, fmt.Sprintf(
			"Collect outstanding receivables of %s", utils.FormatCompactINR(pulse.TotalReceivables),
		))
	}

	if pulse.UnderservedCity != "" {
		add(domain.ActionGrowth, fmt.Sprintf("Plan a sales push in %s", pulse.UnderservedCity))
	}

	if pulse.NeedsCoachingName != "" {
		add(domain.ActionEfficiency, fmt.Sprintf("Schedule a coaching session with %s", pulse.NeedsCoachingName))
	}

	if remaining := pulse.RemainingToTarget(); remaining > 0 {
		add(domain.ActionGrowth, fmt.Sprintf(
			"Close deals today to shrink the %s gap to the monthly target", utils.FormatCompactINR(remaining),
		))
	}

	return actions
}

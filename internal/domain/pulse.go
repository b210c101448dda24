// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "fmt"

// BusinessPulse é o retrato das métricas do período corrente calculado pelo backend.
// É substituído por inteiro a cada busca, nunca alterado parcialmente.
type BusinessPulse struct {
	MonthlySalesTarget float64 `json:"monthly_sales_target"`
	RevenueMTD         float64 `json:"revenue_mtd"`
	TotalCustomers     int     `json:"total_customers"`
	ActiveDeals        int     `json:"active_deals"`
	AvgDealValue       float64 `json:"avg_deal_value"`
	AvgCloseDays       float64 `json:"avg_close_days"`
	PendingQuotesCount int     `json:"pending_quotes_count"`
	PendingQuotesValue float64 `json:"pending_quotes_value"`
	TotalReceivables   float64 `json:"total_receivables"`
	TotalPayables      float64 `json:"total_payables"`
	CashReserves       float64 `json:"cash_reserves"`
	MonthlyBurnRate    float64 `json:"monthly_burn_rate"`
	TopCity            string  `json:"top_city"`
	UnderservedCity    string  `json:"underserved_city"`
	TopPerformerName   string  `json:"top_performer_name"`
	NeedsCoachingName  string  `json:"needs_coaching_name"`
}

// Validate verifica se os valores recebidos fazem sentido antes de entrarem na camada de derivação
func (p *BusinessPulse) Validate() error {
	if p.MonthlySalesTarget < 0 {
		return fmt.Errorf("monthly_sales_target negativo: %v", p.MonthlySalesTarget)
	}
	if p.PendingQuotesCount < 0 {
		return fmt.Errorf("pending_quotes_count negativo: %d", p.PendingQuotesCount)
	}
	if p.TotalCustomers < 0 || p.ActiveDeals < 0 {
		return fmt.Errorf("contagens negativas: customers=%d deals=%d", p.TotalCustomers, p.ActiveDeals)
	}
	return nil
}

// RemainingToTarget retorna quanto falta para a meta mensal (negativo quando a meta foi superada)
func (p *BusinessPulse) RemainingToTarget() float64 {
	return p.MonthlySalesTarget - p.RevenueMTD
}

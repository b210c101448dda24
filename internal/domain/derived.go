package domain

import "time"

type ActionType string

const (
	ActionUrgent     ActionType = "urgent"
	ActionGrowth     ActionType = "growth"
	ActionEfficiency ActionType = "efficiency"
)

// PriorityAction é uma ação recomendada derivada do pulse; não é persistida
type PriorityAction struct {
	Priority int        `json:"priority"`
	Action   string     `json:"action"`
	Type     ActionType `json:"type"`
}

// Dashboard é a cópia do estado do serviço de inteligência entregue à API
type Dashboard struct {
	Pulse               *BusinessPulse           `json:"pulse"`
	SalespersonRankings []SalespersonPerformance `json:"salesperson_rankings"`
	CityPerformance     []GeoInsight             `json:"city_performance"`
	IntelligenceReport  *IntelligenceReport      `json:"intelligence_report"`
	Insights            []string                 `json:"insights"`
	Actions             []PriorityAction         `json:"actions"`
	LastUpdated         *time.Time               `json:"last_updated"`
	IsLoading           bool                     `json:"is_loading"`
	Error               *string                  `json:"error"`
}

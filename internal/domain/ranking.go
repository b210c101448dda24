package domain

import "fmt"

// SalespersonPerformance representa a posição de um vendedor no ranking do mês.
// A ordenação é definida pelo backend.
type SalespersonPerformance struct {
	SalespersonID  string  `json:"salesperson_id"`
	Name           string  `json:"name"`
	Revenue        float64 `json:"revenue"`
	DealsClosed    int     `json:"deals_closed"`
	ConversionRate float64 `json:"conversion_rate"`
	Rank           int     `json:"rank"`
}

// GeoInsight representa o desempenho de uma cidade no mês corrente
type GeoInsight struct {
	City          string  `json:"city"`
	Revenue       float64 `json:"revenue"`
	CustomerCount int     `json:"customer_count"`
	GrowthRate    float64 `json:"growth_rate"`
	Rank          int     `json:"rank"`
}

func (s SalespersonPerformance) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("vendedor sem nome (id=%s)", s.SalespersonID)
	}
	return nil
}

func (g GeoInsight) Validate() error {
	if g.City == "" {
		return fmt.Errorf("cidade sem nome (rank=%d)", g.Rank)
	}
	return nil
}

package domain

// IntelligenceReport agrupa listas de riscos e oportunidades calculadas pelo backend.
// É tratado como um agregado opaco, apenas para leitura.
type IntelligenceReport struct {
	ChurnRisks        []ChurnRisk          `json:"churn_risks"`
	StockoutRisks     []StockoutRisk       `json:"stockout_risks"`
	TopProducts       []ProductPerformance `json:"top_products"`
	GeoInsights       []GeoInsight         `json:"geo_insights"`
	SalesmanBreakdown []SalesmanBreakdown  `json:"salesman_breakdown,omitempty"`
	ProductBreakdown  []ProductPerformance `json:"product_breakdown,omitempty"`
	GapAnalysis       []GapAnalysisEntry   `json:"gap_analysis,omitempty"`
}

type ChurnRisk struct {
	CustomerID       string  `json:"customer_id"`
	CustomerName     string  `json:"customer_name"`
	DaysSinceLastBuy int     `json:"days_since_last_purchase"`
	LifetimeValue    float64 `json:"lifetime_value"`
	RiskScore        float64 `json:"risk_score"`
}

type StockoutRisk struct {
	ItemID        string  `json:"item_id"`
	ItemName      string  `json:"item_name"`
	CurrentStock  float64 `json:"current_stock"`
	DailyVelocity float64 `json:"daily_velocity"`
	DaysOfCover   float64 `json:"days_of_cover"`
}

type ProductPerformance struct {
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	Revenue  float64 `json:"revenue"`
	Quantity float64 `json:"quantity"`
	Margin   float64 `json:"margin"`
}

type SalesmanBreakdown struct {
	SalespersonID string  `json:"salesperson_id"`
	Name          string  `json:"name"`
	Revenue       float64 `json:"revenue"`
	Target        float64 `json:"target"`
}

type GapAnalysisEntry struct {
	Dimension string  `json:"dimension"`
	Label     string  `json:"label"`
	Expected  float64 `json:"expected"`
	Actual    float64 `json:"actual"`
	Gap       float64 `json:"gap"`
}

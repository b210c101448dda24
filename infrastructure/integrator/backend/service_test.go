package backend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerline/crm-intelligence-api/infrastructure/integrator/backend"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/integrator/backend/mocks"
	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var _ intelligence.AggregateSource = (*backend.BackendIntegrator)(nil)

const tenantID = "tenant-a"

func tenantParams() map[string]any {
	return map[string]any{backend.ParamTenantID: tenantID}
}

func TestGetBusinessPulse(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantPulse *domain.BusinessPulse
		wantDecEr bool
	}{
		{
			name:    "objeto",
			payload: `{"monthly_sales_target":500000,"revenue_mtd":400000,"top_city":"Pune","pending_quotes_count":3}`,
			wantPulse: &domain.BusinessPulse{
				MonthlySalesTarget: 500000,
				RevenueMTD:         400000,
				TopCity:            "Pune",
				PendingQuotesCount: 3,
			},
		},
		{
			name:      "lista usa o primeiro item",
			payload:   `[{"monthly_sales_target":100000,"revenue_mtd":5000},{"monthly_sales_target":1}]`,
			wantPulse: &domain.BusinessPulse{MonthlySalesTarget: 100000, RevenueMTD: 5000},
		},
		{
			name:      "resposta nula",
			payload:   `null`,
			wantPulse: nil,
		},
		{
			name:      "lista vazia",
			payload:   ` [] `,
			wantPulse: nil,
		},
		{
			name:      "tipo errado",
			payload:   `{"monthly_sales_target":"muito"}`,
			wantDecEr: true,
		},
		{
			name:      "valor fora do esquema",
			payload:   `{"monthly_sales_target":-1}`,
			wantDecEr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			caller := mocks.NewMockRPCCaller(ctrl)

			caller.EXPECT().
				Call(gomock.Any(), backend.ProcBusinessPulse, tenantParams()).
				Return([]byte(tt.payload), nil)

			pulse, err := backend.New(caller).GetBusinessPulse(context.Background(), tenantID)

			if tt.wantDecEr {
				var decodeErr *domain.DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, backend.ProcBusinessPulse, decodeErr.Call)
				assert.Nil(t, pulse)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPulse, pulse)
		})
	}
}

func TestGetBusinessPulse_ErroNaChamada(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockRPCCaller(ctrl)

	callErr := errors.New("connection reset")
	caller.EXPECT().Call(gomock.Any(), backend.ProcBusinessPulse, gomock.Any()).Return(nil, callErr)

	_, err := backend.New(caller).GetBusinessPulse(context.Background(), tenantID)

	assert.ErrorIs(t, err, callErr)
	assert.Contains(t, err.Error(), backend.ProcBusinessPulse)
}

func TestGetSalespersonRankings(t *testing.T) {
	t.Run("decodifica a lista", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		caller.EXPECT().Call(gomock.Any(), backend.ProcSalespersonRankings, tenantParams()).Return([]byte(`[
			{"salesperson_id":"u1","name":"Asha","revenue":250000,"deals_closed":10,"conversion_rate":0.4,"rank":1},
			{"salesperson_id":"u2","name":"Ravi","revenue":90000,"deals_closed":3,"conversion_rate":0.1,"rank":2}
		]`), nil)

		rankings, err := backend.New(caller).GetSalespersonRankings(context.Background(), tenantID)

		require.NoError(t, err)
		require.Len(t, rankings, 2)
		assert.Equal(t, "Asha", rankings[0].Name)
		assert.Equal(t, 2, rankings[1].Rank)
	})

	t.Run("resposta nula vira lista vazia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		caller.EXPECT().Call(gomock.Any(), backend.ProcSalespersonRankings, gomock.Any()).Return([]byte(`null`), nil)

		rankings, err := backend.New(caller).GetSalespersonRankings(context.Background(), tenantID)

		require.NoError(t, err)
		assert.NotNil(t, rankings)
		assert.Empty(t, rankings)
	})

	t.Run("item sem nome é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		caller.EXPECT().Call(gomock.Any(), backend.ProcSalespersonRankings, gomock.Any()).
			Return([]byte(`[{"salesperson_id":"u1","name":"Asha"},{"salesperson_id":"u9"}]`), nil)

		_, err := backend.New(caller).GetSalespersonRankings(context.Background(), tenantID)

		var decodeErr *domain.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Contains(t, err.Error(), "item 1")
	})
}

func TestGetCityPerformance(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockRPCCaller(ctrl)

	caller.EXPECT().Call(gomock.Any(), backend.ProcCityPerformance, tenantParams()).
		Return([]byte(`[{"city":"Pune","revenue":300000,"customer_count":40,"growth_rate":12.5,"rank":1}]`), nil)

	cities, err := backend.New(caller).GetCityPerformance(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, []domain.GeoInsight{{City: "Pune", Revenue: 300000, CustomerCount: 40, GrowthRate: 12.5, Rank: 1}}, cities)
}

func TestGetIntelligenceReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockRPCCaller(ctrl)

	caller.EXPECT().Call(gomock.Any(), backend.ProcIntelligenceReport, tenantParams()).Return([]byte(`{
		"churn_risks":[{"customer_id":"c1","customer_name":"Kiran Traders","days_since_last_purchase":95,"lifetime_value":120000,"risk_score":0.8}],
		"stockout_risks":[],
		"top_products":[],
		"geo_insights":[]
	}`), nil)

	report, err := backend.New(caller).GetIntelligenceReport(context.Background(), tenantID)

	require.NoError(t, err)
	require.Len(t, report.ChurnRisks, 1)
	assert.Equal(t, 95, report.ChurnRisks[0].DaysSinceLastBuy)
}

func TestGetYearlyGoalProgress(t *testing.T) {
	t.Run("decodifica o progresso", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		params := tenantParams()
		params[backend.ParamYear] = 2025

		caller.EXPECT().Call(gomock.Any(), backend.ProcYearlyGoalProgress, params).Return([]byte(`{
			"year":2025,"target_amount":6000000,"actual_revenue":2500000,"progress_percentage":41.67,
			"days_elapsed":150,"days_remaining":215,"required_daily_run_rate":16279.07,
			"is_achieved":false,"is_exceeded":false,
			"fiscal_year_start":"2025-04-01","fiscal_year_end":"2026-03-31",
			"monthly_breakdown":[{"month":"2025-04","target":500000,"actual":480000}]
		}`), nil)

		progress, err := backend.New(caller).GetYearlyGoalProgress(context.Background(), tenantID, 2025)

		require.NoError(t, err)
		assert.Equal(t, 6000000.0, progress.TargetAmount)
		assert.Equal(t, 365, progress.TotalDays())
		assert.Len(t, progress.MonthlyBreakdown, 1)
	})

	t.Run("data inválida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		caller.EXPECT().Call(gomock.Any(), backend.ProcYearlyGoalProgress, gomock.Any()).
			Return([]byte(`{"year":2025,"fiscal_year_start":"01/04/2025"}`), nil)

		_, err := backend.New(caller).GetYearlyGoalProgress(context.Background(), tenantID, 2025)

		var decodeErr *domain.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("sem meta definida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		caller.EXPECT().Call(gomock.Any(), backend.ProcYearlyGoalProgress, gomock.Any()).Return([]byte(`null`), nil)

		progress, err := backend.New(caller).GetYearlyGoalProgress(context.Background(), tenantID, 2025)

		require.NoError(t, err)
		assert.Nil(t, progress)
	})
}

func TestSetMonthlyTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockRPCCaller(ctrl)

	params := tenantParams()
	params[backend.ParamAmount] = 750000.0

	caller.EXPECT().Exec(gomock.Any(), backend.ProcSetMonthlyTarget, params).Return(nil)

	assert.NoError(t, backend.New(caller).SetMonthlyTarget(context.Background(), tenantID, 750000))
}

func TestSetYearlyGoal(t *testing.T) {
	t.Run("envia o detalhamento quando informado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		breakdown := domain.GoalBreakdown{"2025-04": 500000}
		params := tenantParams()
		params[backend.ParamYear] = 2025
		params[backend.ParamAmount] = 6000000.0
		params[backend.ParamBreakdown] = breakdown

		caller.EXPECT().Exec(gomock.Any(), backend.ProcSetYearlyGoal, params).Return(nil)

		err := backend.New(caller).SetYearlyGoal(context.Background(), tenantID, domain.YearlyGoalRequest{
			Year:      2025,
			Amount:    6000000,
			Breakdown: breakdown,
		})
		assert.NoError(t, err)
	})

	t.Run("erro do backend é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockRPCCaller(ctrl)

		execErr := errors.New("permission denied")
		params := tenantParams()
		params[backend.ParamYear] = 2025
		params[backend.ParamAmount] = 6000000.0

		caller.EXPECT().Exec(gomock.Any(), backend.ProcSetYearlyGoal, params).Return(execErr)

		err := backend.New(caller).SetYearlyGoal(context.Background(), tenantID, domain.YearlyGoalRequest{Year: 2025, Amount: 6000000})
		assert.ErrorIs(t, err, execErr)
	})
}

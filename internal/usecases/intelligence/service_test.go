package intelligence_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const tenantID = "tenant-a"

var fixedNow = time.Date(2025, time.August, 12, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func expectAggregates(source *mocks.MockAggregateSource, pulse *domain.BusinessPulse, cities []domain.GeoInsight) {
	source.EXPECT().GetBusinessPulse(gomock.Any(), tenantID).Return(pulse, nil)
	source.EXPECT().GetSalespersonRankings(gomock.Any(), tenantID).Return([]domain.SalespersonPerformance{
		{SalespersonID: "u1", Name: "Asha", Revenue: 250000, DealsClosed: 10, Rank: 1},
	}, nil)
	source.EXPECT().GetCityPerformance(gomock.Any(), tenantID).Return(cities, nil)
	source.EXPECT().GetIntelligenceReport(gomock.Any(), tenantID).Return(&domain.IntelligenceReport{}, nil)
}

func TestFetchBusinessPulse_Sucesso(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockAggregateSource(ctrl)

	pulse := &domain.BusinessPulse{MonthlySalesTarget: 500000, RevenueMTD: 400000}
	expectAggregates(source, pulse, []domain.GeoInsight{{City: "Pune", Revenue: 300000}})

	service := intelligence.NewService(tenantID, source, intelligence.WithClock(fixedClock))

	err := service.FetchBusinessPulse(context.Background())
	require.NoError(t, err)

	dashboard := service.Snapshot()

	require.NotNil(t, dashboard.Pulse)
	assert.Equal(t, *pulse, *dashboard.Pulse)
	assert.Len(t, dashboard.SalespersonRankings, 1)
	assert.Len(t, dashboard.CityPerformance, 1)
	assert.NotNil(t, dashboard.IntelligenceReport)
	assert.False(t, dashboard.IsLoading)
	assert.Nil(t, dashboard.Error)
	require.NotNil(t, dashboard.LastUpdated)
	assert.Equal(t, fixedNow, *dashboard.LastUpdated)
	assert.Equal(t,
		"You are at 80% of the monthly target. Close the gap with ₹10K in sales per day.",
		dashboard.Insights[0],
	)
	assert.Equal(t, service.Actions(), dashboard.Actions)
}

func TestFetchBusinessPulse_FalhaParcialMantemValorAnterior(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockAggregateSource(ctrl)

	first := &domain.BusinessPulse{MonthlySalesTarget: 100000, RevenueMTD: 20000}
	second := &domain.BusinessPulse{MonthlySalesTarget: 100000, RevenueMTD: 60000}

	expectAggregates(source, first, []domain.GeoInsight{{City: "Pune", Revenue: 20000}})

	service := intelligence.NewService(tenantID, source, intelligence.WithClock(fixedClock))
	require.NoError(t, service.FetchBusinessPulse(context.Background()))

	source.EXPECT().GetBusinessPulse(gomock.Any(), tenantID).Return(second, nil)
	source.EXPECT().GetSalespersonRankings(gomock.Any(), tenantID).Return(nil, nil)
	source.EXPECT().GetCityPerformance(gomock.Any(), tenantID).Return(nil, errors.New("timeout"))
	source.EXPECT().GetIntelligenceReport(gomock.Any(), tenantID).Return(&domain.IntelligenceReport{}, nil)

	err := service.FetchBusinessPulse(context.Background())
	require.NoError(t, err)

	dashboard := service.Snapshot()

	assert.Equal(t, 60000.0, dashboard.Pulse.RevenueMTD)
	assert.Equal(t, []domain.GeoInsight{{City: "Pune", Revenue: 20000}}, dashboard.CityPerformance)
	assert.NotNil(t, dashboard.SalespersonRankings)
	assert.Empty(t, dashboard.SalespersonRankings)
	assert.Nil(t, dashboard.Error)
	assert.False(t, dashboard.IsLoading)
}

func TestFetchBusinessPulse_TodasAsChamadasFalham(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockAggregateSource(ctrl)

	source.EXPECT().GetBusinessPulse(gomock.Any(), tenantID).Return(nil, errors.New("falha"))
	source.EXPECT().GetSalespersonRankings(gomock.Any(), tenantID).Return(nil, errors.New("falha"))
	source.EXPECT().GetCityPerformance(gomock.Any(), tenantID).Return(nil, errors.New("falha"))
	source.EXPECT().GetIntelligenceReport(gomock.Any(), tenantID).Return(nil, errors.New("falha"))

	service := intelligence.NewService(tenantID, source)

	err := service.FetchBusinessPulse(context.Background())
	require.NoError(t, err)

	dashboard := service.Snapshot()

	assert.Nil(t, dashboard.Pulse)
	assert.Nil(t, dashboard.Error)
	assert.Empty(t, dashboard.Insights)
	assert.Empty(t, dashboard.Actions)
	assert.False(t, dashboard.IsLoading)
}

func TestFetchBusinessPulse_PanicoEmUmaChamada(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockAggregateSource(ctrl)

	pulse := &domain.BusinessPulse{MonthlySalesTarget: 100000, RevenueMTD: 100000}

	source.EXPECT().GetBusinessPulse(gomock.Any(), tenantID).Return(pulse, nil)
	source.EXPECT().GetSalespersonRankings(gomock.Any(), tenantID).DoAndReturn(
		func(context.Context, string) ([]domain.SalespersonPerformance, error) {
			panic("resposta inesperada")
		},
	)
	source.EXPECT().GetCityPerformance(gomock.Any(), tenantID).Return(nil, nil)
	source.EXPECT().GetIntelligenceReport(gomock.Any(), tenantID).Return(nil, nil)

	service := intelligence.NewService(tenantID, source)

	err := service.FetchBusinessPulse(context.Background())
	require.NoError(t, err)

	dashboard := service.Snapshot()
	assert.NotNil(t, dashboard.Pulse)
	assert.False(t, dashboard.IsLoading)
}

func TestFetchBusinessPulse_ErrosDeOrquestracao(t *testing.T) {
	t.Run("sem fonte configurada", func(t *testing.T) {
		service := intelligence.NewService(tenantID, nil)

		err := service.FetchBusinessPulse(context.Background())

		assert.ErrorIs(t, err, intelligence.ErrNoSource)
		dashboard := service.Snapshot()
		require.NotNil(t, dashboard.Error)
		assert.Equal(t, intelligence.ErrNoSource.Error(), *dashboard.Error)
		assert.False(t, dashboard.IsLoading)
	})

	t.Run("contexto já cancelado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		service := intelligence.NewService(tenantID, source)

		err := service.FetchBusinessPulse(ctx)

		assert.ErrorIs(t, err, intelligence.ErrOrchestration)
		dashboard := service.Snapshot()
		assert.NotNil(t, dashboard.Error)
		assert.False(t, dashboard.IsLoading)
	})

	t.Run("nova busca limpa o erro anterior", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		service := intelligence.NewService(tenantID, source)
		require.Error(t, service.FetchBusinessPulse(ctx))

		expectAggregates(source, &domain.BusinessPulse{}, nil)
		require.NoError(t, service.FetchBusinessPulse(context.Background()))

		assert.Nil(t, service.Snapshot().Error)
	})
}

func TestFetchBusinessPulse_BuscaMaisRecenteVence(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockAggregateSource(ctrl)

	oldPulse := &domain.BusinessPulse{MonthlySalesTarget: 100000, RevenueMTD: 10000}
	newPulse := &domain.BusinessPulse{MonthlySalesTarget: 100000, RevenueMTD: 90000}

	entered := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		source.EXPECT().GetBusinessPulse(gomock.Any(), tenantID).DoAndReturn(
			func(context.Context, string) (*domain.BusinessPulse, error) {
				close(entered)
				<-release
				return oldPulse, nil
			},
		),
		source.EXPECT().GetBusinessPulse(gomock.Any(), tenantID).Return(newPulse, nil),
	)
	source.EXPECT().GetSalespersonRankings(gomock.Any(), tenantID).Return(nil, nil).Times(2)
	source.EXPECT().GetCityPerformance(gomock.Any(), tenantID).Return(nil, nil).Times(2)
	source.EXPECT().GetIntelligenceReport(gomock.Any(), tenantID).Return(nil, nil).Times(2)

	service := intelligence.NewService(tenantID, source)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, service.FetchBusinessPulse(context.Background()))
	}()

	<-entered
	require.NoError(t, service.FetchBusinessPulse(context.Background()))
	assert.Equal(t, 90000.0, service.Snapshot().Pulse.RevenueMTD)

	close(release)
	wg.Wait()

	dashboard := service.Snapshot()
	assert.Equal(t, 90000.0, dashboard.Pulse.RevenueMTD)
	assert.False(t, dashboard.IsLoading)
}

func TestSetMonthlyTarget(t *testing.T) {
	t.Run("valor inválido não chama o backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		service := intelligence.NewService(tenantID, source)

		assert.ErrorIs(t, service.SetMonthlyTarget(context.Background(), 0), intelligence.ErrInvalidAmount)
		assert.ErrorIs(t, service.SetMonthlyTarget(context.Background(), -10), intelligence.ErrInvalidAmount)
	})

	t.Run("erro do backend é devolvido sem nova busca", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		backendErr := errors.New("permissão negada")
		source.EXPECT().SetMonthlyTarget(gomock.Any(), tenantID, 750000.0).Return(backendErr)

		service := intelligence.NewService(tenantID, source)

		err := service.SetMonthlyTarget(context.Background(), 750000)

		assert.ErrorIs(t, err, backendErr)
		assert.Nil(t, service.Snapshot().Error)
	})

	t.Run("sucesso busca os agregados novamente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		pulse := &domain.BusinessPulse{MonthlySalesTarget: 750000}
		gomock.InOrder(
			source.EXPECT().SetMonthlyTarget(gomock.Any(), tenantID, 750000.0).Return(nil),
			source.EXPECT().GetBusinessPulse(gomock.Any(), tenantID).Return(pulse, nil),
		)
		source.EXPECT().GetSalespersonRankings(gomock.Any(), tenantID).Return(nil, nil)
		source.EXPECT().GetCityPerformance(gomock.Any(), tenantID).Return(nil, nil)
		source.EXPECT().GetIntelligenceReport(gomock.Any(), tenantID).Return(nil, nil)

		service := intelligence.NewService(tenantID, source)

		err := service.SetMonthlyTarget(context.Background(), 750000)

		require.NoError(t, err)
		assert.Equal(t, 750000.0, service.Snapshot().Pulse.MonthlySalesTarget)
	})

	t.Run("falha na releitura não desfaz a gravação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		source.EXPECT().SetMonthlyTarget(gomock.Any(), tenantID, 750000.0).
			DoAndReturn(func(context.Context, string, float64) error {
				cancel()
				return nil
			})

		service := intelligence.NewService(tenantID, source)

		err := service.SetMonthlyTarget(ctx, 750000)

		require.NoError(t, err)
		assert.NotNil(t, service.Snapshot().Error)
	})
}

func TestGoalProgress_BuscaNovamenteACadaSelecao(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockAggregateSource(ctrl)

	before := &domain.GoalProgress{Year: 2025, TargetAmount: 6000000, ActualRevenue: 2500000}
	after := &domain.GoalProgress{Year: 2025, TargetAmount: 6000000, ActualRevenue: 2600000}
	gomock.InOrder(
		source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(before, nil),
		source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(after, nil),
	)

	service := intelligence.NewService(tenantID, source)

	first, err := service.GoalProgress(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, before, first)

	second, err := service.GoalProgress(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, after, second)
}

func TestGoalProgress_FalhaDevolveUltimoValor(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockAggregateSource(ctrl)

	last := &domain.GoalProgress{Year: 2025, TargetAmount: 6000000, ActualRevenue: 2500000}
	backendErr := errors.New("timeout")
	gomock.InOrder(
		source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(last, nil),
		source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(nil, backendErr),
		source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2026).Return(nil, backendErr),
	)

	service := intelligence.NewService(tenantID, source)

	_, err := service.GoalProgress(context.Background(), 2025)
	require.NoError(t, err)

	progress, err := service.GoalProgress(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, last, progress)

	_, err = service.GoalProgress(context.Background(), 2026)
	assert.ErrorIs(t, err, backendErr)
}

func TestGoalProgress_AnoInvalido(t *testing.T) {
	service := intelligence.NewService(tenantID, nil)

	_, err := service.GoalProgress(context.Background(), 0)

	assert.ErrorIs(t, err, intelligence.ErrInvalidYear)
}

func TestSetYearlyGoal(t *testing.T) {
	breakdown := domain.GoalBreakdown{"2025-04": 500000}

	t.Run("grava e atualiza o progresso do ano", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		progress := &domain.GoalProgress{Year: 2025, TargetAmount: 6000000}
		gomock.InOrder(
			source.EXPECT().SetYearlyGoal(gomock.Any(), tenantID, domain.YearlyGoalRequest{
				Year:      2025,
				Amount:    6000000,
				Breakdown: breakdown,
			}).Return(nil),
			source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(progress, nil),
		)

		service := intelligence.NewService(tenantID, source)

		require.NoError(t, service.SetYearlyGoal(context.Background(), 2025, 6000000, breakdown))

		cached, ok := service.LastGoalProgress(2025)
		require.True(t, ok)
		assert.Equal(t, progress, cached)
	})

	t.Run("erro na gravação é devolvido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		backendErr := errors.New("falha")
		source.EXPECT().SetYearlyGoal(gomock.Any(), tenantID, gomock.Any()).Return(backendErr)

		service := intelligence.NewService(tenantID, source)

		assert.ErrorIs(t, service.SetYearlyGoal(context.Background(), 2025, 6000000, nil), backendErr)
	})

	t.Run("falha na releitura descarta o progresso em memória", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockAggregateSource(ctrl)

		stale := &domain.GoalProgress{Year: 2025, TargetAmount: 1000000}
		fresh := &domain.GoalProgress{Year: 2025, TargetAmount: 6000000}

		gomock.InOrder(
			source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(stale, nil),
			source.EXPECT().SetYearlyGoal(gomock.Any(), tenantID, gomock.Any()).Return(nil),
			source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(nil, errors.New("timeout")),
			source.EXPECT().GetYearlyGoalProgress(gomock.Any(), tenantID, 2025).Return(fresh, nil),
		)

		service := intelligence.NewService(tenantID, source)

		_, err := service.GoalProgress(context.Background(), 2025)
		require.NoError(t, err)

		require.NoError(t, service.SetYearlyGoal(context.Background(), 2025, 6000000, nil))

		progress, err := service.GoalProgress(context.Background(), 2025)
		require.NoError(t, err)
		assert.Equal(t, fresh, progress)
	})

	t.Run("valores inválidos", func(t *testing.T) {
		service := intelligence.NewService(tenantID, nil)

		assert.ErrorIs(t, service.SetYearlyGoal(context.Background(), 0, 100, nil), intelligence.ErrInvalidYear)
		assert.ErrorIs(t, service.SetYearlyGoal(context.Background(), 2025, 0, nil), intelligence.ErrInvalidAmount)
	})
}

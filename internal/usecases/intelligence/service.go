package intelligence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Nomes das chamadas de agregação, usados em logs e métricas
const (
	CallBusinessPulse       = "get-business-pulse"
	CallSalespersonRankings = "get-salesperson-rankings"
	CallCityPerformance     = "get-city-performance"
	CallIntelligenceReport  = "get-intelligence-report"
	CallYearlyGoalProgress  = "get-yearly-goal-progress"
)

// Intelligencer é a interface do serviço de inteligência de um tenant
type Intelligencer interface {
	FetchBusinessPulse(ctx context.Context) error
	Snapshot() domain.Dashboard
	Insights() []string
	Actions() []domain.PriorityAction
	SetMonthlyTarget(ctx context.Context, amount float64) error
	GoalProgress(ctx context.Context, year int) (*domain.GoalProgress, error)
	FetchGoalProgress(ctx context.Context, year int) (*domain.GoalProgress, error)
	SetYearlyGoal(ctx context.Context, year int, amount float64, breakdown domain.GoalBreakdown) error
}

// Service mantém os agregados de um tenant e deriva insights e ações a partir deles
type Service struct {
	tenantID string
	source   AggregateSource
	now      func() time.Time

	mu                  sync.RWMutex
	pulse               *domain.BusinessPulse
	salespersonRankings []domain.SalespersonPerformance
	cityPerformance     []domain.GeoInsight
	intelligenceReport  *domain.IntelligenceReport
	goals               map[int]*domain.GoalProgress
	lastUpdated         time.Time
	isLoading           bool
	lastError           string
	generation          uint64
}

// Option configura o Service
type Option func(*Service)

// WithClock substitui o relógio usado para o dia do mês e o lastUpdated
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService cria o serviço de inteligência de um tenant
func NewService(tenantID string, source AggregateSource, opts ...Option) *Service {
	s := &Service{
		tenantID:            tenantID,
		source:              source,
		now:                 time.Now,
		salespersonRankings: []domain.SalespersonPerformance{},
		cityPerformance:     []domain.GeoInsight{},
		goals:               make(map[int]*domain.GoalProgress),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// TenantID retorna o tenant atendido pelo serviço
func (s *Service) TenantID() string {
	return s.tenantID
}

// FetchBusinessPulse dispara as quatro buscas de agregados em paralelo e aguarda todas terminarem.
// Falhas individuais são registradas em log e deixam o estado correspondente como estava.
// Apenas falhas da própria orquestração preenchem o erro compartilhado.
func (s *Service) FetchBusinessPulse(ctx context.Context) (err error) {
	gen := s.beginFetch()
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrOrchestration, r)
		}
		fetchDuration.Observe(time.Since(startTime).Seconds())
		s.finishFetch(gen, err)
	}()

	if s.source == nil {
		return ErrNoSource
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ErrOrchestration, ctxErr)
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go s.settle(&wg, gen, CallBusinessPulse, func() (func(), error) {
		pulse, err := s.source.GetBusinessPulse(ctx, s.tenantID)
		return func() { s.pulse = pulse }, err
	})

	go s.settle(&wg, gen, CallSalespersonRankings, func() (func(), error) {
		rankings, err := s.source.GetSalespersonRankings(ctx, s.tenantID)
		return func() { s.salespersonRankings = nonNilSlice(rankings) }, err
	})

	go s.settle(&wg, gen, CallCityPerformance, func() (func(), error) {
		cities, err := s.source.GetCityPerformance(ctx, s.tenantID)
		return func() { s.cityPerformance = nonNilSlice(cities) }, err
	})

	go s.settle(&wg, gen, CallIntelligenceReport, func() (func(), error) {
		report, err := s.source.GetIntelligenceReport(ctx, s.tenantID)
		return func() { s.intelligenceReport = report }, err
	})

	wg.Wait()

	s.applyIfCurrent(gen, func() {
		s.lastUpdated = s.now()
	})

	return nil
}

// beginFetch abre uma nova geração de busca; resultados de gerações anteriores passam a ser descartados
func (s *Service) beginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.isLoading = true
	s.lastError = ""

	return s.generation
}

func (s *Service) finishFetch(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).WithField("tenant_id", s.tenantID).Error("Erro ao orquestrar a busca dos agregados")
	}
	s.isLoading = false
}

// settle executa uma chamada de agregado e aplica o resultado de forma independente das demais
func (s *Service) settle(wg *sync.WaitGroup, gen uint64, call string, fetch func() (func(), error)) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			aggregateCalls.WithLabelValues(call, outcomeFailure).Inc()
			logrus.WithFields(logrus.Fields{
				"tenant_id": s.tenantID,
				"call":      call,
				"panic":     r,
			}).Error("Pânico ao buscar agregado")
		}
	}()

	apply, err := fetch()
	if err != nil {
		aggregateCalls.WithLabelValues(call, outcomeFailure).Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"tenant_id": s.tenantID,
			"call":      call,
		}).Warn("Erro ao buscar agregado, mantendo valor anterior")
		return
	}

	if !s.applyIfCurrent(gen, apply) {
		aggregateCalls.WithLabelValues(call, outcomeStale).Inc()
		logrus.WithFields(logrus.Fields{
			"tenant_id":  s.tenantID,
			"call":       call,
			"generation": gen,
		}).Debug("Resultado de busca antiga descartado")
		return
	}

	aggregateCalls.WithLabelValues(call, outcomeSuccess).Inc()
}

// applyIfCurrent aplica a alteração apenas se a geração ainda for a mais recente
func (s *Service) applyIfCurrent(gen uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}

	apply()
	return true
}

// Snapshot retorna uma cópia do estado atual junto com os insights e ações derivados
func (s *Service) Snapshot() domain.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dashboard := domain.Dashboard{
		SalespersonRankings: append([]domain.SalespersonPerformance{}, s.salespersonRankings...),
		CityPerformance:     append([]domain.GeoInsight{}, s.cityPerformance...),
		IntelligenceReport:  s.intelligenceReport,
		IsLoading:           s.isLoading,
		Insights:            GenerateInsights(s.pulse, s.now().Day()),
		Actions:             GenerateActions(s.pulse),
	}

	if s.pulse != nil {
		pulse := *s.pulse
		dashboard.Pulse = &pulse
	}

	if !s.lastUpdated.IsZero() {
		lastUpdated := s.lastUpdated
		dashboard.LastUpdated = &lastUpdated
	}

	if s.lastError != "" {
		lastError := s.lastError
		dashboard.Error = &lastError
	}

	return dashboard
}

// Insights deriva as observações do pulse atual
func (s *Service) Insights() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return GenerateInsights(s.pulse, s.now().Day())
}

// Actions deriva as ações prioritárias do pulse atual
func (s *Service) Actions() []domain.PriorityAction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return GenerateActions(s.pulse)
}

// SetMonthlyTarget grava a meta mensal e, em caso de sucesso, busca os agregados novamente.
// O erro da gravação é devolvido para quem chamou decidir como avisar o usuário.
// Falha na releitura fica no erro compartilhado do dashboard, pois a meta já foi gravada.
func (s *Service) SetMonthlyTarget(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if s.source == nil {
		return ErrNoSource
	}

	if err := s.source.SetMonthlyTarget(ctx, s.tenantID, amount); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"tenant_id": s.tenantID,
			"amount":    amount,
		}).Error("Erro ao definir meta mensal")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": s.tenantID,
		"amount":    amount,
	}).Info("Meta mensal definida, atualizando agregados")

	if err := s.FetchBusinessPulse(ctx); err != nil {
		logrus.WithError(err).WithField("tenant_id", s.tenantID).Warn("Meta mensal gravada, mas os agregados não foram relidos")
	}

	return nil
}

// GoalProgress busca o progresso da meta a cada seleção do ano.
// Se a busca falhar, devolve o último valor conhecido do ano, quando houver.
func (s *Service) GoalProgress(ctx context.Context, year int) (*domain.GoalProgress, error) {
	progress, err := s.FetchGoalProgress(ctx, year)
	if err == nil {
		return progress, nil
	}

	last, ok := s.LastGoalProgress(year)
	if !ok {
		return nil, err
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"tenant_id": s.tenantID,
		"year":      year,
	}).Warn("Usando o último progresso conhecido da meta anual")

	return last, nil
}

// LastGoalProgress retorna o último progresso buscado do ano, sem ir ao backend
func (s *Service) LastGoalProgress(year int) (*domain.GoalProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.goals[year]
	return progress, ok
}

// FetchGoalProgress busca o progresso da meta do ano e substitui o valor em memória
func (s *Service) FetchGoalProgress(ctx context.Context, year int) (*domain.GoalProgress, error) {
	if year <= 0 {
		return nil, ErrInvalidYear
	}

	if s.source == nil {
		return nil, ErrNoSource
	}

	progress, err := s.source.GetYearlyGoalProgress(ctx, s.tenantID, year)
	if err != nil {
		aggregateCalls.WithLabelValues(CallYearlyGoalProgress, outcomeFailure).Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"tenant_id": s.tenantID,
			"year":      year,
		}).Warn("Erro ao buscar progresso da meta anual")
		return nil, err
	}
	aggregateCalls.WithLabelValues(CallYearlyGoalProgress, outcomeSuccess).Inc()

	s.mu.Lock()
	s.goals[year] = progress
	s.mu.Unlock()

	return progress, nil
}

// SetYearlyGoal sobrescreve a meta anual e atualiza o progresso do ano
func (s *Service) SetYearlyGoal(ctx context.Context, year int, amount float64, breakdown domain.GoalBreakdown) error {
	if year <= 0 {
		return ErrInvalidYear
	}

	if amount <= 0 {
		return ErrInvalidAmount
	}

	if s.source == nil {
		return ErrNoSource
	}

	goal := domain.YearlyGoalRequest{
		Year:      year,
		Amount:    amount,
		Breakdown: breakdown,
	}

	if err := s.source.SetYearlyGoal(ctx, s.tenantID, goal); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"tenant_id": s.tenantID,
			"year":      year,
			"amount":    amount,
		}).Error("Erro ao definir meta anual")
		return err
	}

	// A meta já foi gravada; falha na releitura só deixa o progresso em memória desatualizado
	if _, err := s.FetchGoalProgress(ctx, year); err != nil {
		s.mu.Lock()
		delete(s.goals, year)
		s.mu.Unlock()
	}

	return nil
}

func nonNilSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

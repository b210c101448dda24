package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/ledgerline/crm-intelligence-api/internal/config"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/sirupsen/logrus"
)

// TenantRegistry é a parte do registro de tenants usada pela atualização periódica
type TenantRegistry interface {
	TenantIDs() []string
	Get(tenantID string) (*intelligence.Tenant, error)
}

// PulseRefreshConfig representa a configuração do agendador de atualização dos agregados
type PulseRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PulseRefreshService busca novamente os agregados de todos os tenants já atendidos
type PulseRefreshService struct {
	scheduler           *gocron.Scheduler
	config              PulseRefreshConfig
	registry            TenantRegistry
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewPulseRefreshService cria uma nova instância do serviço de atualização periódica
func NewPulseRefreshService(registry TenantRegistry, appConfig *config.Config) *PulseRefreshService {
	refreshConfig := PulseRefreshConfig{
		CronSchedule: appConfig.PulseRefresh.CronSchedule,
		SyncEnabled:  appConfig.PulseRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de atualização dos agregados carregada")

	return &PulseRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		registry:  registry,
	}
}

// Start inicia o agendador
func (s *PulseRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Atualização periódica dos agregados desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização dos agregados")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAllTenants(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização dos agregados: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização dos agregados")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAllTenants atualiza os tenants em sequência; a falha de um não interrompe os demais
func (s *PulseRefreshService) refreshAllTenants(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização dos agregados já em andamento, ignorando")
		return
	}
	startTime := time.Now()
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	tenantIDs := s.registry.TenantIDs()
	if len(tenantIDs) == 0 {
		logrus.Info("Nenhum tenant registrado para atualização dos agregados")
		return
	}

	failed := 0
	for _, tenantID := range tenantIDs {
		tenant, err := s.registry.Get(tenantID)
		if err != nil {
			failed++
			logrus.WithError(err).WithField("tenant_id", tenantID).Error("Erro ao obter serviço do tenant")
			continue
		}

		if err := tenant.FetchBusinessPulse(ctx); err != nil {
			failed++
			logrus.WithError(err).WithField("tenant_id", tenantID).Error("Erro ao atualizar agregados do tenant")
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"tenants":  len(tenantIDs),
		"failed":   failed,
	}).Info("Atualização dos agregados concluída")
}

// TriggerManualSync inicia manualmente uma atualização dos agregados
func (s *PulseRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização dos agregados já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual dos agregados")
	go s.refreshAllTenants(context.Background())
}

// GetStatus retorna o status atual da atualização
func (s *PulseRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"tenants":                len(s.registry.TenantIDs()),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

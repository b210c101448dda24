package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/repository"
	"github.com/ledgerline/crm-intelligence-api/internal/config"
	"github.com/sirupsen/logrus"
)

// MeetingReminderConfig representa a configuração do agendador de lembretes de reunião
type MeetingReminderConfig struct {
	IntervalSeconds int
	LeadTime        time.Duration
	SyncEnabled     bool
}

// MeetingReminderService verifica periodicamente as reuniões próximas e avisa cada uma uma única vez
type MeetingReminderService struct {
	scheduler   *gocron.Scheduler
	config      MeetingReminderConfig
	meetingRepo repository.MeetingRepository
	notifiers   []Notifier
	now         func() time.Time

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time

	// notified guarda o início de cada reunião já avisada por esta instância
	notified      map[string]time.Time
	notifiedMutex sync.Mutex
}

// NewMeetingReminderService cria uma nova instância do serviço de lembretes de reunião
func NewMeetingReminderService(
	meetingRepo repository.MeetingRepository,
	appConfig *config.Config,
	notifiers ...Notifier,
) *MeetingReminderService {
	reminderConfig := MeetingReminderConfig{
		IntervalSeconds: appConfig.MeetingReminders.IntervalSeconds,
		LeadTime:        time.Duration(appConfig.MeetingReminders.LeadMinutes) * time.Minute,
		SyncEnabled:     appConfig.MeetingReminders.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"interval_seconds": reminderConfig.IntervalSeconds,
		"lead_time":        reminderConfig.LeadTime.String(),
		"sync_enabled":     reminderConfig.SyncEnabled,
		"notifiers":        len(notifiers),
	}).Info("Configuração do agendador de lembretes de reunião carregada")

	return &MeetingReminderService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      reminderConfig,
		meetingRepo: meetingRepo,
		notifiers:   notifiers,
		now:         time.Now,
		notified:    make(map[string]time.Time),
	}
}

// Start inicia o agendador
func (s *MeetingReminderService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Lembretes de reunião desabilitados por configuração")
		return nil
	}

	logrus.WithField("interval_seconds", s.config.IntervalSeconds).Info("Iniciando agendador de lembretes de reunião")

	_, err := s.scheduler.Every(s.config.IntervalSeconds).Seconds().SingletonMode().Do(func() {
		s.checkUpcomingMeetings(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar lembretes de reunião: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de lembretes de reunião")
		s.scheduler.Stop()
	}()

	return nil
}

// checkUpcomingMeetings avisa as reuniões que começam dentro da antecedência configurada
func (s *MeetingReminderService) checkUpcomingMeetings(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Debug("Verificação de lembretes já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	now := s.now()
	s.forgetStarted(now)

	meetings, err := s.meetingRepo.ListStartingBetween(ctx, now, now.Add(s.config.LeadTime))
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar reuniões próximas")
		return
	}

	sent := 0
	for _, meeting := range meetings {
		if s.wasNotified(meeting.ID) {
			continue
		}

		delivered := false
		for _, notifier := range s.notifiers {
			if err := notifier.NotifyMeeting(ctx, meeting); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"tenant_id":  meeting.TenantID,
					"meeting_id": meeting.ID,
				}).Warn("Erro ao enviar lembrete de reunião")
				continue
			}
			delivered = true
		}

		if delivered {
			s.markNotified(meeting.ID, meeting.StartsAt)
			sent++
		}
	}

	if sent > 0 {
		logrus.WithFields(logrus.Fields{
			"meetings": len(meetings),
			"sent":     sent,
		}).Info("Lembretes de reunião enviados")
	}
}

func (s *MeetingReminderService) wasNotified(meetingID string) bool {
	s.notifiedMutex.Lock()
	defer s.notifiedMutex.Unlock()

	_, ok := s.notified[meetingID]
	return ok
}

func (s *MeetingReminderService) markNotified(meetingID string, startsAt time.Time) {
	s.notifiedMutex.Lock()
	defer s.notifiedMutex.Unlock()

	s.notified[meetingID] = startsAt
}

// forgetStarted remove do controle as reuniões que já começaram, que não voltam mais na consulta
func (s *MeetingReminderService) forgetStarted(now time.Time) {
	s.notifiedMutex.Lock()
	defer s.notifiedMutex.Unlock()

	for id, startsAt := range s.notified {
		if !startsAt.After(now) {
			delete(s.notified, id)
		}
	}
}

// TriggerManualSync inicia manualmente uma verificação de lembretes
func (s *MeetingReminderService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Verificação de lembretes já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando verificação manual de lembretes de reunião")
	go s.checkUpcomingMeetings(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *MeetingReminderService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.notifiedMutex.Lock()
	pending := len(s.notified)
	s.notifiedMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_interval_seconds":  s.config.IntervalSeconds,
		"sync_enabled":           s.config.SyncEnabled,
		"lead_time":              s.config.LeadTime.String(),
		"notified_meetings":      pending,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

package scheduler

import (
	"context"
	"time"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks

// Notifier entrega o lembrete de uma reunião próxima
type Notifier interface {
	NotifyMeeting(ctx context.Context, meeting domain.Meeting) error
}

// LogNotifier registra o lembrete no log da aplicação
type LogNotifier struct {
	now func() time.Time
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{now: time.Now}
}

func (n *LogNotifier) NotifyMeeting(_ context.Context, meeting domain.Meeting) error {
	logrus.WithFields(logrus.Fields{
		"tenant_id":     meeting.TenantID,
		"meeting_id":    meeting.ID,
		"title":         meeting.Title,
		"customer_name": meeting.CustomerName,
		"assigned_to":   meeting.AssignedTo,
		"starts_in":     meeting.StartsAt.Sub(n.now()).Round(time.Minute).String(),
	}).Info("Lembrete de reunião")

	return nil
}

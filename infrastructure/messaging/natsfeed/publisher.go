package natsfeed

import (
	"context"
	"time"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/pkg/errors"
)

// MeetingsSubject é o assunto dos lembretes de reunião
const MeetingsSubject = "notifications.meetings"

// Publisher é satisfeito por *nats.Conn
type Publisher interface {
	Publish(subject string, data []byte) error
}

// MeetingReminder é o corpo publicado para cada lembrete
type MeetingReminder struct {
	Type    string         `json:"type"`
	Meeting domain.Meeting `json:"meeting"`
	SentAt  time.Time      `json:"sent_at"`
}

// MeetingPublisher publica os lembretes de reunião no NATS
type MeetingPublisher struct {
	conn Publisher
	now  func() time.Time
}

func NewMeetingPublisher(conn Publisher) *MeetingPublisher {
	return &MeetingPublisher{
		conn: conn,
		now:  time.Now,
	}
}

func (p *MeetingPublisher) NotifyMeeting(ctx context.Context, meeting domain.Meeting) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "contexto cancelado antes da publicação")
	}

	data, err := json.Marshal(MeetingReminder{
		Type:    "meeting_reminder",
		Meeting: meeting,
		SentAt:  p.now(),
	})
	if err != nil {
		return errors.Wrap(err, "erro ao serializar lembrete")
	}

	if err := p.conn.Publish(MeetingsSubject, data); err != nil {
		return errors.Wrapf(err, "erro ao publicar em %s", MeetingsSubject)
	}

	return nil
}

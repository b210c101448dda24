package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/ledgerline/crm-intelligence-api/internal/domain"
)

//go:generate mockgen -source=meeting.go -destination=mocks/mock_meeting.go -package=mocks

const (
	meetingsTable = "crm.crm_meetings m"
)

type MeetingRepository interface {
	// ListStartingBetween lista as reuniões com início no intervalo (from, to]
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Meeting, error)
}

type meetingRepository struct {
	conn postgres.Queryer
}

func NewMeetingRepository(conn *postgres.Connection) MeetingRepository {
	return &meetingRepository{
		conn: conn,
	}
}

func (r *meetingRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Meeting, error) {
	sqlQuery, args, err := buildMeetingsQuery(from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	meetings := make([]domain.Meeting, 0)
	for rows.Next() {
		var meeting domain.Meeting
		if err := rows.Scan(
			&meeting.ID,
			&meeting.TenantID,
			&meeting.Title,
			&meeting.CustomerName,
			&meeting.StartsAt,
			&meeting.AssignedTo,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler reunião: %w", err)
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar reuniões: %w", err)
	}

	return meetings, nil
}

func buildMeetingsQuery(from, to time.Time) (string, []any, error) {
	return squirrel.
		Select(
			"m.id",
			"m.tenant_id",
			"m.title",
			"COALESCE(m.customer_name, '')",
			"m.starts_at",
			"COALESCE(m.assigned_to::text, '')",
		).
		From(meetingsTable).
		Where(squirrel.Gt{"m.starts_at": from}).
		Where(squirrel.LtOrEq{"m.starts_at": to}).
		Where(squirrel.NotEq{"m.status": "cancelled"}).
		OrderBy("m.starts_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

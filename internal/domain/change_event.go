package domain

import "fmt"

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// Tabelas observadas pelo change feed
const (
	TableVouchers = "vouchers"
	TableCRMGoals = "crm_goals"
	TableMeetings = "crm_meetings"
)

// ChangeEvent é uma notificação de alteração de linha vinda do backend
type ChangeEvent struct {
	Table    string     `json:"table"`
	Type     ChangeType `json:"type"`
	TenantID string     `json:"tenant_id"`
	RecordID string     `json:"record_id,omitempty"`
}

func (e ChangeEvent) Validate() error {
	if e.Table == "" {
		return fmt.Errorf("evento sem tabela")
	}
	switch e.Type {
	case ChangeInsert, ChangeUpdate, ChangeDelete:
		return nil
	default:
		return fmt.Errorf("tipo de evento desconhecido: %q", e.Type)
	}
}

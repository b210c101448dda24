package domain

import "time"

// Meeting é um compromisso do CRM usado pelos lembretes
type Meeting struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Title        string    `json:"title"`
	CustomerName string    `json:"customer_name"`
	StartsAt     time.Time `json:"starts_at"`
	AssignedTo   string    `json:"assigned_to"`
}

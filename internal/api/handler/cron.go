package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/ledgerline/crm-intelligence-api/pkg/apiErrors"
	"github.com/ledgerline/crm-intelligence-api/pkg/log"
)

// Tipos de cron job aceitos em /v1/cron/:type/run
const (
	CronJobTypeMeetingReminders = "meeting-reminders"
	CronJobTypePulseRefresh     = "pulse-refresh"
	CronJobTypeAll              = "all"
)

// CronJob é um agendador que aceita execução manual
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os agendadores que podem ser executados manualmente
type CronJobServices struct {
	MeetingReminders CronJob
	PulseRefresh     CronJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeMeetingReminders:
			if services.MeetingReminders == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de lembretes de reunião não disponível", nil)
				return
			}
			services.MeetingReminders.TriggerManualSync()

		case CronJobTypePulseRefresh:
			if services.PulseRefresh == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização dos agregados não disponível", nil)
				return
			}
			services.PulseRefresh.TriggerManualSync()

		case CronJobTypeAll:
			if services.MeetingReminders != nil {
				services.MeetingReminders.TriggerManualSync()
			}
			if services.PulseRefresh != nil {
				services.PulseRefresh.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: meeting-reminders, pulse-refresh, all", nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Cron job disparada manualmente")

		writeJSON(w, r, http.StatusOK, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status de uma cron job, ou de todas com o tipo "all"
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs := map[string]CronJob{}
		if services.MeetingReminders != nil {
			jobs[CronJobTypeMeetingReminders] = services.MeetingReminders
		}
		if services.PulseRefresh != nil {
			jobs[CronJobTypePulseRefresh] = services.PulseRefresh
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType != CronJobTypeAll {
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Cron job desconhecida ou não configurada", nil)
				return
			}
			jobs = map[string]CronJob{cronType: job}
		}

		status := make(map[string]any, len(jobs))
		for name, job := range jobs {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}

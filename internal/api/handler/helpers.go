package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/ledgerline/crm-intelligence-api/pkg/apiErrors"
	"github.com/ledgerline/crm-intelligence-api/pkg/log"
	"github.com/ledgerline/crm-intelligence-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TenantProvider entrega o serviço de inteligência do tenant autenticado
type TenantProvider interface {
	Get(tenantID string) (*intelligence.Tenant, error)
}

// tenantFromRequest resolve o tenant a partir das claims; escreve o erro quando não consegue
func tenantFromRequest(w http.ResponseWriter, r *http.Request, provider TenantProvider) (*intelligence.Tenant, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}

	tenant, err := provider.Get(claims.TenantID)
	if err != nil {
		writeServiceError(w, r, err, "Tenant não identificado")
		return nil, false
	}

	return tenant, true
}

// yearParam lê o parâmetro :year da rota
func yearParam(r *http.Request) (int, error) {
	year, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("year"))
	if err != nil || year <= 0 {
		return 0, intelligence.ErrInvalidYear
	}
	return year, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz o erro do serviço para o código da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	classified := intelligence.ClassifyError(err)
	apiErr := apiErrors.FromError(classified.Err, classified.Code)

	logger := log.ForContext(r.Context()).WithError(err).WithField("code", apiErr.Code)
	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logger.Error(message)
	} else {
		logger.Warn(message)
	}

	apiErrors.WriteError(w, apiErr.Code, message, apiErr.Message)
}

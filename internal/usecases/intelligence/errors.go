package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/pkg/apiErrors"
)

var (
	ErrNoSource         = errors.New("fonte de agregados não configurada")
	ErrOrchestration    = errors.New("falha na orquestração da busca de agregados")
	ErrInvalidAmount    = errors.New("valor da meta deve ser maior que zero")
	ErrInvalidYear      = errors.New("ano inválido")
	ErrMissingTenant    = errors.New("tenant não informado")
	ErrGoalNotAvailable = errors.New("progresso da meta não disponível")
)

// IntelligenceError carrega o código de erro da API junto do erro original
type IntelligenceError struct {
	Err  error
	Code string
}

func (e *IntelligenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *IntelligenceError) Unwrap() error {
	return e.Err
}

func NewIntelligenceError(err error, code string) *IntelligenceError {
	return &IntelligenceError{Err: err, Code: code}
}

// ClassifyError associa um erro do serviço ao código da API
func ClassifyError(err error) *IntelligenceError {
	var intelErr *IntelligenceError
	if errors.As(err, &intelErr) {
		return intelErr
	}

	var decodeErr *domain.DecodeError

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return NewIntelligenceError(err, apiErrors.ErrInvalidAmount)
	case errors.Is(err, ErrInvalidYear):
		return NewIntelligenceError(err, apiErrors.ErrInvalidYear)
	case errors.Is(err, ErrMissingTenant):
		return NewIntelligenceError(err, apiErrors.ErrMissingTenant)
	case errors.Is(err, ErrGoalNotAvailable):
		return NewIntelligenceError(err, apiErrors.ErrGoalNotAvailable)
	case errors.Is(err, ErrNoSource), errors.Is(err, ErrOrchestration):
		return NewIntelligenceError(err, apiErrors.ErrInternalServer)
	case errors.As(err, &decodeErr):
		return NewIntelligenceError(err, apiErrors.ErrAggregateDecoding)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewIntelligenceError(err, apiErrors.ErrCommunication)
	default:
		return NewIntelligenceError(err, apiErrors.ErrExternalService)
	}
}

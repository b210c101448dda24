package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/authenticating"
	"github.com/ledgerline/crm-intelligence-api/pkg/apiErrors"
	"github.com/ledgerline/crm-intelligence-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// Rotas acessíveis sem token
var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// AuthMiddleware valida o bearer token e coloca as claims e o tenant no contexto
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cabeçalho Authorization obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Token recusado")

				switch {
				case errors.Is(err, authenticating.ErrExpiredToken):
					apiErrors.WriteError(w, apiErrors.ErrExpiredToken, "Token expirado", nil)
				case errors.Is(err, authenticating.ErrMissingTenant):
					apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Token sem tenant", nil)
				default:
					apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				}
				return
			}

			if recorder, ok := w.(tenantRecorder); ok {
				recorder.recordTenant(claims.TenantID)
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			ctx = log.WithTenantID(ctx, claims.TenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retorna as claims colocadas pelo AuthMiddleware
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok && claims != nil
}

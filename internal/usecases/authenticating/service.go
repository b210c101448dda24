package authenticating

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ledgerline/crm-intelligence-api/internal/config"
	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Authenticator valida os tokens emitidos pelo backend hospedado
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
}

func NewService(cfg *config.Config) Authenticator {
	if cfg.Auth.Secret == "" {
		logrus.Warn("AUTH_SECRET vazio, todos os tokens serão recusados")
	}

	return &Service{
		secret: []byte(cfg.Auth.Secret),
	}
}

// ValidateToken aceita apenas tokens HS256 válidos que tragam o tenant do usuário
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TenantID == "" {
		return nil, ErrMissingTenant
	}

	return claims, nil
}

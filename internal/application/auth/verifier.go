package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/jhoicas/foundry-erp/pkg/config"
	"github.com/jhoicas/foundry-erp/pkg/jwt"
)

// TokenVerifier valida access tokens de Supabase Auth.
type TokenVerifier struct {
	keyFunc gojwt.Keyfunc
	issuer  string
	jwks    *keyfunc.JWKS // nil con secret HS256
}

// NewHMACVerifier verificador para proyectos con JWT secret compartido (HS256).
func NewHMACVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{keyFunc: jwt.HMACKeyfunc(secret), issuer: issuer}
}

// NewJWKSVerifier descarga las llaves públicas del proyecto y las refresca en segundo plano.
func NewJWKSVerifier(jwksURL, issuer string, log zerolog.Logger) (*TokenVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Warn().Err(err).Str("jwks_url", jwksURL).Msg("no se pudo refrescar JWKS")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("auth: jwks: %w", err)
	}
	return &TokenVerifier{keyFunc: jwks.Keyfunc, issuer: issuer, jwks: jwks}, nil
}

// NewVerifier elige JWKS si hay URL configurada; si no, HS256 con el secret.
func NewVerifier(cfg config.AuthConfig, log zerolog.Logger) (*TokenVerifier, error) {
	if cfg.JWKSURL != "" {
		return NewJWKSVerifier(cfg.JWKSURL, cfg.Issuer, log)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth: falta JWT secret o JWKS URL")
	}
	return NewHMACVerifier(cfg.JWTSecret, cfg.Issuer), nil
}

// Verify valida firma, expiración e issuer y devuelve el dueño del token.
func (v *TokenVerifier) Verify(_ context.Context, token string) (Owner, error) {
	claims, err := jwt.Parse(token, v.keyFunc, v.issuer)
	if err != nil {
		return Owner{}, err
	}
	return Owner{ID: claims.Subject, Email: claims.Email}, nil
}

// Close detiene el refresco de JWKS.
func (v *TokenVerifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

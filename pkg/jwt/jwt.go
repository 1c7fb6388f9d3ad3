package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims de un access token de Supabase Auth. El subject es el id del usuario dueño de las filas.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"` // "authenticated" | "anon" | "service_role"
}

// ErrSinSubject token válido pero sin usuario asociado.
var ErrSinSubject = errors.New("jwt: token sin subject")

// HMACKeyfunc devuelve la keyfunc para tokens HS256 firmados con el secret del proyecto.
func HMACKeyfunc(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}
}

// Generate genera un token HS256 con el formato de Supabase. Se usa en tests y en el CLI de desarrollo.
func Generate(secret, userID, email, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{"authenticated"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  "authenticated",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token con la keyfunc dada y devuelve sus claims.
// Con issuer vacío no se valida iss.
func Parse(tokenString string, keyFunc jwt.Keyfunc, issuer string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, ErrSinSubject
	}
	return claims, nil
}

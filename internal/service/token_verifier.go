package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier valida access tokens emitidos por el proveedor de identidad
// externo. Aquí solo se verifica; nunca se emite.
type TokenVerifier struct {
	secret []byte
}

// Claims son los claims que este backend consume del token.
type Claims struct {
	UserID      string `json:"uid"`
	DisplayName string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Parse verifica firma HMAC y expiración y devuelve los claims.
func (v *TokenVerifier) Parse(tokenStr string) (Claims, error) {
	if len(v.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

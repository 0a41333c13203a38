package auth

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
	jwtSecretErr  error
)

func segredo() ([]byte, error) {
	jwtSecretOnce.Do(func() {
		s := os.Getenv("JWT_SECRET")
		if s == "" {
			jwtSecretErr = errors.New("JWT_SECRET não definida")
			return
		}
		jwtSecret = []byte(s)
	})
	return jwtSecret, jwtSecretErr
}

// Claims do token de acesso (perfil entra no RBAC dos handlers)
type Claims struct {
	UserID  uint   `json:"userId"`
	Perfil  string `json:"perfil"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GerarToken gera um JWT HS256 com validade de 24h
func GerarToken(userID uint, perfil string) (string, error) {
	secret, err := segredo()
	if err != nil {
		return "", err
	}
	claims := &Claims{
		UserID:  userID,
		Perfil:  perfil,
		IsAdmin: perfil == PerfilAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidarToken valida o token e retorna as claims
func ValidarToken(tokenStr string) (*Claims, error) {
	secret, err := segredo()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}

// utils/jwt.go
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Alex-109/Genchi-Bitacora-Back/config"
)

type Claims struct {
	Rut    string `json:"rut"`
	Nombre string `json:"nombre"`
	Cargo  string `json:"cargo"`
	jwt.RegisteredClaims
}

func GenerateJWT(rut, nombre, cargo string) (string, error) {
	claims := Claims{
		Rut:    rut,
		Nombre: nombre,
		Cargo:  cargo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTKey)
}

func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return config.JWTKey, nil
	})

	if err != nil || !token.Valid {
		return nil, err
	}

	return claims, nil
}

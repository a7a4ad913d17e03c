package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos del workspace.
// El token lo emite este servicio tras un login contra el backend; WorkspaceID apunta
// al contexto de aplicación en memoria de ese login.
type Claims struct {
	jwt.RegisteredClaims
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	CompanyID   string `json:"company_id"`
}

// Generate genera un token JWT firmado para un workspace.
func Generate(secret, workspaceID, userID, companyID, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if workspaceID == "" {
		return "", fmt.Errorf("jwt: workspace vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		WorkspaceID: workspaceID,
		UserID:      userID,
		CompanyID:   companyID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.WorkspaceID == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// PeekExpiry lee el exp de un token emitido por el backend sin verificar la firma
// (no tenemos su secreto). Solo sirve como pista para la UI; el backend sigue
// siendo quien rechaza con 401. ok=false si no es un JWT o no trae exp.
func PeekExpiry(tokenString string) (exp time.Time, ok bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

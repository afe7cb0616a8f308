package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SupervisorResumen datos mínimos del supervisor enlazado, copiados al token.
type SupervisorResumen struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// SessionClaims es la foto de la sesión tomada en el login. Los claims NO se
// re-leen de la base en cada request: la sesión es una capacidad inmutable y
// los cambios de rol/permisos requieren un refresh explícito o un nuevo login.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID       string             `json:"user_id"`
	Rol          string             `json:"rol"` // ADMINISTRADOR | SUPERVISOR | COBRADOR
	Nombre       string             `json:"nombre"`
	Apellido     string             `json:"apellido"`
	Activo       bool               `json:"activo"`
	LimiteTiempo *int               `json:"limite_tiempo,omitempty"` // minutos por sesión; nil = sin límite
	Permisos     []string           `json:"permisos,omitempty"`
	Supervisor   *SupervisorResumen `json:"supervisor,omitempty"`
}

// Session es el payload que se firma dentro del token.
type Session struct {
	UserID       string
	Rol          string
	Nombre       string
	Apellido     string
	Activo       bool
	LimiteTiempo *int
	Permisos     []string
	Supervisor   *SupervisorResumen
}

// Generate genera un token JWT firmado con la foto completa de la sesión.
func Generate(secret string, s Session, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       s.UserID,
		Rol:          s.Rol,
		Nombre:       s.Nombre,
		Apellido:     s.Apellido,
		Activo:       s.Activo,
		LimiteTiempo: s.LimiteTiempo,
		Permisos:     s.Permisos,
		Supervisor:   s.Supervisor,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los claims de sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*SessionClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

package entity

import "time"

// Roles válidos para User.
const (
	RolAdministrador = "ADMINISTRADOR"
	RolSupervisor    = "SUPERVISOR"
	RolCobrador      = "COBRADOR"
)

// ValidRol indica si el rol es uno de los tres valores enumerados.
func ValidRol(rol string) bool {
	return rol == RolAdministrador || rol == RolSupervisor || rol == RolCobrador
}

// User representa un usuario del back office. Un usuario inactivo nunca puede
// autenticarse; la baja es siempre lógica (Activo=false), nunca borrado físico
// en la ruta de autorización.
type User struct {
	ID           string
	Email        string // único global
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Nombre       string
	Apellido     string
	Rol          string // ADMINISTRADOR, SUPERVISOR, COBRADOR
	Activo       bool
	LimiteTiempo *int     // minutos por sesión; nil = sin límite
	SupervisorID *string  // enlace opcional al supervisor
	Permisos     []string // permisos explícitos además del rol
	UltimoAcceso *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto para pantallas y reportes.
func (u *User) NombreCompleto() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

// TienePermiso verifica un permiso explícito. El rol ADMINISTRADOR los tiene todos.
func (u *User) TienePermiso(permiso string) bool {
	if u.Rol == RolAdministrador {
		return true
	}
	for _, p := range u.Permisos {
		if p == permiso {
			return true
		}
	}
	return false
}

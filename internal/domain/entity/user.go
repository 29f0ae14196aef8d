package entity

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleCliente    = "cliente"
	RoleRepartidor = "repartidor"
)

// User representa un usuario del sistema: cliente, repartidor o administrador.
type User struct {
	ID           string
	Nombre       string
	Apellido     string
	Email        string
	Telefono     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, cliente, repartidor
	Direccion    string
	Audit
}

// FullName nombre completo para mensajes y notificaciones.
func (u *User) FullName() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

package entity

// User usuario autenticado según el backend.
type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
}

// Credentials datos de login que se reenvían al backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult respuesta del backend a un login exitoso.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

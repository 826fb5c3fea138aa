package entity

const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// ValidRole reports whether role is one of the two accepted values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSeller
}

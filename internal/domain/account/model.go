package account

import "log/slog"

// Role decides which dashboard a new user lands on.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

// SignupRequest is the payload of POST /users/signup.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Role     Role   `json:"role" validate:"required,oneof=owner employee"`
	Password string `json:"password" validate:"required,min=8"`
}

// LogValue keeps the password out of logs.
func (r SignupRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", r.Email),
		slog.String("role", string(r.Role)),
	)
}

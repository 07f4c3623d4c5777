package dto

import (
	"strings"
	"unicode"

	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// SignupRequest is the POST /auth/signup payload.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserRole string `json:"userRole"`
}

// Validate checks required fields.
func (r SignupRequest) Validate() error {
	details := map[string]any{}
	if !strings.Contains(r.Email, "@") {
		details["email"] = "valid email required"
	}
	if r.Password == "" {
		details["password"] = "required"
	}
	if r.UserRole == "" {
		details["userRole"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid signup request", details)
	}
	return nil
}

// SigninRequest is the POST /auth/signin payload.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r SigninRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	return nil
}

// AuthResponse carries an issued token, scheme prefix included.
type AuthResponse struct {
	BearerToken string `json:"bearerToken"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ChangePasswordRequest is the PUT /users payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Validate enforces the password policy on the new password.
func (r ChangePasswordRequest) Validate() error {
	if r.OldPassword == "" {
		return apperrors.NewValidationError("oldPassword required", nil)
	}
	var hasDigit, hasUpper bool
	for _, ch := range r.NewPassword {
		hasDigit = hasDigit || unicode.IsDigit(ch)
		hasUpper = hasUpper || unicode.IsUpper(ch)
	}
	if len([]rune(r.NewPassword)) < 8 || !hasDigit || !hasUpper {
		return apperrors.NewValidationError("새 비밀번호는 8자 이상이어야 하고, 숫자와 대문자를 포함해야 합니다.", nil)
	}
	return nil
}

// ChangeRoleRequest is the PATCH /admin/users/:userId payload.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

package session

import "supportdesk/internal/shared/utils"

// LoginInput is the login form. Validation is advisory; the backend decides.
type LoginInput struct {
	Email    string `json:"email" validate:"notblank,loose_email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,loose_email"`
	Password string `json:"password" validate:"required,min=6"`
}

var authFormMessages = map[string]string{
	"name.notblank":     "Name is required",
	"email.notblank":    "Email is required",
	"email.loose_email": "Please enter a valid email address",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters",
}

// ValidateLogin returns nil when the form may be submitted.
func ValidateLogin(in LoginInput) utils.FieldErrors {
	return utils.ValidateForm(in, authFormMessages)
}

// ValidateRegister returns nil when the form may be submitted.
func ValidateRegister(in RegisterInput) utils.FieldErrors {
	return utils.ValidateForm(in, authFormMessages)
}

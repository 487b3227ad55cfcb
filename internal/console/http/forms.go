package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type createUserForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type toggleUserForm struct {
	IsActive string `validate:"required,boolean"`
}

type namedForm struct {
	Name        string `validate:"required,max=255"`
	Description string `validate:"max=1024"`
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// validationMessage renders the first failed rule as a sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid form submission."
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

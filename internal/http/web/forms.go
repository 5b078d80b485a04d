package web

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ListingForm carries the create/edit submission. The logo file travels
// separately as a multipart part named "logo".
type ListingForm struct {
	Title       string `form:"title" binding:"required"`
	Company     string `form:"company" binding:"required"`
	Location    string `form:"location" binding:"required"`
	Website     string `form:"website" binding:"omitempty,url"`
	Email       string `form:"email" binding:"required,email"`
	Tags        string `form:"tags"`
	Description string `form:"description"`
}

type RegisterForm struct {
	Name                 string `form:"name" binding:"required"`
	Email                string `form:"email" binding:"required,email"`
	Password             string `form:"password" binding:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// formErrors turns a binding failure into per-field messages keyed by the
// form field name, for re-rendering the submitted form.
func formErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "invalid form submission"
		return out
	}

	for _, fe := range verrs {
		out[snakeCase(fe.Field())] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "Does not match"
	default:
		return "Is invalid"
	}
}

// snakeCase maps a struct field name to its form name
// (PasswordConfirmation -> password_confirmation).
func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

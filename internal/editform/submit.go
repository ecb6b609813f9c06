package editform

import (
	"github.com/idilsaglam/profile/internal/model"
	"github.com/idilsaglam/profile/internal/validate"
)

const (
	MsgName     = "Insira um nome de usuário com ao menos 3 caracteres."
	MsgEmail    = "Insira um endereço de email válido."
	MsgPassword = "Insira uma senha com pelo menos 6 caracteres."
)

// BuildPatch turns the form into an update body, leaving out empty fields.
func BuildPatch(s FormState) model.Patch {
	var p model.Patch
	if s.Name != "" {
		name := s.Name
		p.Name = &name
	}
	if s.Email != "" {
		email := s.Email
		p.Email = &email
	}
	if s.Password != "" {
		pw := s.Password
		p.Password = &pw
	}
	return p
}

// Validate checks every field on its own; one failure does not hide another.
func Validate(s FormState) FieldErrors {
	var errs FieldErrors
	if s.Name == "" || !validate.Name(s.Name) {
		errs.Name = FieldError{Message: MsgName, HasError: true}
	}
	if s.Email == "" || !validate.Email(s.Email) {
		errs.Email = FieldError{Message: MsgEmail, HasError: true}
	}
	if s.Password == "" || !validate.Password(s.Password) {
		errs.Password = FieldError{Message: MsgPassword, HasError: true}
	}
	return errs
}

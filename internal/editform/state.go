package editform

import "github.com/idilsaglam/profile/internal/model"

// Field identifies one editable input.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPassword

	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPassword:
		return "password"
	}
	return "unknown"
}

// FieldError is the annotation shown under one input.
type FieldError struct {
	Message  string
	HasError bool
}

type FieldErrors struct {
	Name, Email, Password FieldError
}

func (e FieldErrors) Get(f Field) FieldError {
	switch f {
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.Email
	case FieldPassword:
		return e.Password
	}
	return FieldError{}
}

func (e *FieldErrors) set(f Field, fe FieldError) {
	switch f {
	case FieldName:
		e.Name = fe
	case FieldEmail:
		e.Email = fe
	case FieldPassword:
		e.Password = fe
	}
}

// Any reports whether at least one field is flagged.
func (e FieldErrors) Any() bool {
	return e.Name.HasError || e.Email.HasError || e.Password.HasError
}

// FormState is the view-model of one edit session.
type FormState struct {
	Name     string
	Email    string
	Password string

	// Error is the global message, usually straight from the API.
	Error  string
	Errors FieldErrors

	// NavigateTarget holds the user id to redirect to. It is set only after
	// the last update call succeeded.
	NavigateTarget string

	Loading    bool
	Submitting bool
	Disposed   bool
}

func (s FormState) Value(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldPassword:
		return s.Password
	}
	return ""
}

func (s *FormState) setValue(f Field, v string) {
	switch f {
	case FieldName:
		s.Name = v
	case FieldEmail:
		s.Email = v
	case FieldPassword:
		s.Password = v
	}
}

// Event is anything that moves the form from one state to the next.
// Every event is also a tea.Msg.
type Event interface{ isEvent() }

type (
	FieldChanged struct {
		Field Field
		Value string
	}
	LoadSucceeded struct{ User model.User }
	LoadFailed    struct{ Message string }
	// SubmitStarted carries the validation result of the submitted values.
	SubmitStarted struct{ Errors FieldErrors }
	SubmitSucceeded struct{ ID string }
	SubmitFailed    struct{ Message string }
	// Disposed marks the form torn down; later results are dropped.
	Disposed struct{}
)

func (FieldChanged) isEvent()    {}
func (LoadSucceeded) isEvent()   {}
func (LoadFailed) isEvent()      {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}
func (Disposed) isEvent()        {}

// Reduce returns the state after ev. It never mutates s.
func Reduce(s FormState, ev Event) FormState {
	if s.Disposed {
		return s
	}
	switch ev := ev.(type) {
	case FieldChanged:
		s.setValue(ev.Field, ev.Value)
		s.Errors.set(ev.Field, FieldError{})
	case LoadSucceeded:
		s.Loading = false
		s.Name = ev.User.Name
		s.Email = ev.User.Email
	case LoadFailed:
		s.Loading = false
		s.Error = ev.Message
	case SubmitStarted:
		s.Submitting = true
		s.Error = ""
		for f := Field(0); f < fieldCount; f++ {
			if fe := ev.Errors.Get(f); fe.HasError {
				s.Errors.set(f, fe)
			}
		}
	case SubmitSucceeded:
		s.Submitting = false
		s.NavigateTarget = ev.ID
	case SubmitFailed:
		s.Submitting = false
		s.NavigateTarget = ""
		s.Error = ev.Message
	case Disposed:
		s.Disposed = true
		s.Loading = false
		s.Submitting = false
	}
	return s
}

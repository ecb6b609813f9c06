package editform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/profile/internal/model"
)

func TestReduce_FieldChangedClearsOnlyThatError(t *testing.T) {
	s := FormState{Errors: FieldErrors{
		Name:  FieldError{Message: MsgName, HasError: true},
		Email: FieldError{Message: MsgEmail, HasError: true},
	}}

	s = Reduce(s, FieldChanged{Field: FieldName, Value: "Ana"})

	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, FieldError{}, s.Errors.Name)
	assert.True(t, s.Errors.Email.HasError, "other fields keep their error")
}

func TestReduce_LoadSucceeded(t *testing.T) {
	s := FormState{Loading: true, Password: "typed"}

	s = Reduce(s, LoadSucceeded{User: model.User{ID: "u-1", Name: "Ana", Email: "ana@example.com"}})

	assert.False(t, s.Loading)
	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, "ana@example.com", s.Email)
	assert.Equal(t, "typed", s.Password, "password never comes from the server")
}

func TestReduce_LoadFailedKeepsFieldsBlank(t *testing.T) {
	s := Reduce(FormState{Loading: true}, LoadFailed{Message: "User not found"})

	assert.Equal(t, "User not found", s.Error)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Name)
	assert.Empty(t, s.Email)
}

func TestReduce_SubmitLifecycle(t *testing.T) {
	s := FormState{Error: "old"}

	s = Reduce(s, SubmitStarted{Errors: FieldErrors{Name: FieldError{Message: MsgName, HasError: true}}})
	assert.True(t, s.Submitting)
	assert.Empty(t, s.Error)
	assert.True(t, s.Errors.Name.HasError)

	failed := Reduce(s, SubmitFailed{Message: "Email already exists"})
	assert.False(t, failed.Submitting)
	assert.Equal(t, "Email already exists", failed.Error)
	assert.Empty(t, failed.NavigateTarget)

	ok := Reduce(s, SubmitSucceeded{ID: "u-1"})
	assert.False(t, ok.Submitting)
	assert.Equal(t, "u-1", ok.NavigateTarget)
}

func TestReduce_SubmitFailedClearsNavigateTarget(t *testing.T) {
	s := FormState{NavigateTarget: "u-1"}

	s = Reduce(s, SubmitFailed{Message: "boom"})
	assert.Empty(t, s.NavigateTarget)
}

func TestReduce_SubmitStartedMergesErrors(t *testing.T) {
	s := FormState{Errors: FieldErrors{Email: FieldError{Message: MsgEmail, HasError: true}}}

	s = Reduce(s, SubmitStarted{Errors: FieldErrors{Password: FieldError{Message: MsgPassword, HasError: true}}})

	assert.True(t, s.Errors.Email.HasError)
	assert.True(t, s.Errors.Password.HasError)
	assert.False(t, s.Errors.Name.HasError)
}

func TestReduce_NoUpdateAfterDispose(t *testing.T) {
	s := Reduce(FormState{Loading: true}, Disposed{})
	assert.True(t, s.Disposed)

	events := []Event{
		LoadSucceeded{User: model.User{Name: "Ana"}},
		LoadFailed{Message: "late"},
		SubmitSucceeded{ID: "u-1"},
		SubmitFailed{Message: "late"},
		FieldChanged{Field: FieldEmail, Value: "x"},
	}
	for _, ev := range events {
		assert.Equal(t, s, Reduce(s, ev), "%T after dispose", ev)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	in := FormState{Name: "Ana"}
	_ = Reduce(in, FieldChanged{Field: FieldName, Value: "Bia"})
	assert.Equal(t, "Ana", in.Name)
}

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "address", Message: "must not be empty"},
		{Field: "items", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := NewValidationError("bad input")

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.NotNil(t, ve)

	ve, ok = IsValidationError(errors.New("some other error"))
	assert.False(t, ok)
	assert.Nil(t, ve)
}

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("seller not found")

	nfe, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
	assert.Equal(t, "seller not found", nfe.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	nfe, ok := IsNotFoundError(errors.New("some other error"))
	assert.False(t, ok)
	assert.Nil(t, nfe)
}

func TestOutOfRangeError(t *testing.T) {
	err := NewOutOfRangeError("seller is outside the delivery radius")

	assert.Equal(t, "seller is outside the delivery radius", err.Error())

	ore, ok := IsOutOfRangeError(err)
	assert.True(t, ok)
	assert.NotNil(t, ore)

	_, ok = IsOutOfRangeError(NewNotFoundError("nope"))
	assert.False(t, ok)
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("order belongs to a different seller")

	assert.Equal(t, "order belongs to a different seller", err.Error())

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.NotNil(t, fe)

	_, ok = IsForbiddenError(errors.New("other"))
	assert.False(t, ok)
}

func TestVerificationError(t *testing.T) {
	err := NewVerificationError("payment signature verification failed")

	assert.Equal(t, "payment signature verification failed", err.Error())

	ve, ok := IsVerificationError(err)
	assert.True(t, ok)
	assert.NotNil(t, ve)

	_, ok = IsVerificationError(errors.New("other"))
	assert.False(t, ok)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database: database error", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestInternalError_WithoutCause(t *testing.T) {
	err := NewInternalError("unexpected failure", nil)

	assert.Equal(t, "unexpected failure", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

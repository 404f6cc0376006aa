package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetType(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorType
	}{
		{NotFoundf("planet %q not found", "Terra"), ErrorTypeNotFound},
		{Validation("name is required"), ErrorTypeValidation},
		{Conflictf("planet %q already exists", "Terra"), ErrorTypeConflict},
		{Unauthorized("authentication required"), ErrorTypeUnauthorized},
		{Forbidden("nope"), ErrorTypeForbidden},
		{MethodNotAllowed("PATCH"), ErrorTypeMethodNotAllowed},
		{PayloadTooLargef("%d bytes", 10), ErrorTypePayloadTooLarge},
		{RateLimited("slow down"), ErrorTypeRateLimited},
		{External("github down"), ErrorTypeExternal},
		{stderrors.New("plain"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetType(tt.err), tt.err.Error())
	}
}

func TestGetType_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", NotFoundf("planet %q not found", "Terra"))

	assert.Equal(t, ErrorTypeNotFound, GetType(err))
	assert.True(t, Is(err, ErrorTypeNotFound))
	assert.False(t, Is(nil, ErrorTypeNotFound))
}

func TestAppError_MessageAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := WrapInternal("failed to list planets", cause)

	assert.Equal(t, "failed to list planets: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "method PATCH not allowed", MethodNotAllowed("PATCH").Error())
}

package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"conflict maps to 400", NewConflict("Username already registered", nil), http.StatusBadRequest, "CONFLICT"},
		{"unauthorized", NewUnauthorized("nope"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbidden("nope"), http.StatusForbidden, "FORBIDDEN"},
		{"not found", NewNotFound("user", nil), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped domain error", fmt.Errorf("handler: %w", NewForbidden("x")), http.StatusForbidden, "FORBIDDEN"},
		{"fiber error", fiber.NewError(http.StatusMethodNotAllowed, "method not allowed"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"unknown", cause, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
			assert.Equal(t, tt.wantCode, de.Code)
		})
	}
}

func TestToDomainError_InternalHidesCause(t *testing.T) {
	de := ToDomainError(errors.New("pq: relation users does not exist"))
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorContains(t, de, "relation users")
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestNewNotFound_Message(t *testing.T) {
	de := ToDomainError(NewNotFound("Booking", nil))
	assert.Equal(t, "Booking not found", de.Message)
	assert.Nil(t, de.Details)
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPCodes(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeServiceDown, http.StatusServiceUnavailable},
		{ErrCodeExternalService, http.StatusBadGateway},
		{ErrCodeDatabase, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").GetHTTPCode())
		})
	}
}

func TestWrapAndExtract(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("fetching feed: %w", ExternalServiceError("feed", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeExternalService, GetCode(err))
	assert.Equal(t, http.StatusBadGateway, GetHTTPCode(err))
	assert.Contains(t, err.Error(), "caused by: connection refused")

	plain := stderrors.New("boom")
	assert.Equal(t, ErrCodeInternal, GetCode(plain))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPCode(plain))
}

func TestConstructorDetails(t *testing.T) {
	nf := NotFound("episode", 7)
	assert.Equal(t, "episode not found", nf.Message)
	assert.Equal(t, 7, nf.Details["id"])

	dup := AlreadyExists("episode", "g1")
	assert.Equal(t, http.StatusConflict, dup.GetHTTPCode())

	v := ValidationError("url", "is required")
	assert.Equal(t, "url", v.Details["field"])
	assert.Equal(t, "VALIDATION: validation failed for field 'url': is required", v.Error())
}

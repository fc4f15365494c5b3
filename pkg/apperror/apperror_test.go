package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewNotFound("entry", "1"), http.StatusNotFound},
		{NewInvalidInput("bad", nil), http.StatusBadRequest},
		{NewUnauthorized("no token", nil), http.StatusUnauthorized},
		{NewPermissionDenied("nope"), http.StatusForbidden},
		{NewUpstream("github", errors.New("boom")), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", NewInternal("x", nil)), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.err), tt.err.Error())
	}
}

func TestToJSON(t *testing.T) {
	body := ToJSON(NewInvalidInput("'query' is required", nil))
	assert.Equal(t, "'query' is required", body["error"])
	assert.Equal(t, "Invalid input provided", body["details"])

	body = ToJSON(NewInvalidInput("", nil))
	assert.Equal(t, "Invalid input provided", body["error"])

	body = ToJSON(NewInternal("pool exhausted", errors.New("boom")))
	assert.Equal(t, "An internal server error occurred", body["error"])
	assert.Equal(t, "pool exhausted", body["details"])

	body = ToJSON(NewUpstream("github search failed", nil))
	assert.Equal(t, "Upstream service failed", body["error"])

	body = ToJSON(errors.New("plain failure"))
	assert.Equal(t, "plain failure", body["error"])
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}

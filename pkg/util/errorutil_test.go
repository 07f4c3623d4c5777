package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_KeepsDomainErrorThroughWrapping(t *testing.T) {
	base := NewDomainError("MISSING_TOKEN", "JWT 토큰이 필요합니다.", http.StatusBadRequest, nil)

	got := ToDomainError(fmt.Errorf("gate: %w", base))

	require.NotNil(t, got)
	assert.Same(t, base, got)
}

func TestToDomainError_MapsNoRowsToNotFound(t *testing.T) {
	got := ToDomainError(pgx.ErrNoRows)

	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
}

func TestToDomainError_FallsBackToInternal(t *testing.T) {
	cause := errors.New("boom")

	got := ToDomainError(cause)

	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainError_Body(t *testing.T) {
	err := NewDomainError("VALIDATION_FAILED", "bad", http.StatusBadRequest, map[string]any{"field": "email"})

	body := err.Body()

	inner, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", inner["code"])
	assert.Equal(t, "bad", inner["message"])
	assert.Equal(t, map[string]any{"field": "email"}, inner["details"])

	_, hasDetails := NewInvalidRequest("x").(*DomainError).Body()["error"].(map[string]any)["details"]
	assert.False(t, hasDetails)
}

func TestNewUnauthorized(t *testing.T) {
	got := ToDomainError(NewUnauthorized("잘못된 비밀번호입니다."))

	assert.Equal(t, "UNAUTHORIZED", got.Code)
	assert.Equal(t, http.StatusUnauthorized, got.HTTPStatus)
	assert.Equal(t, "잘못된 비밀번호입니다.", got.Error())
}

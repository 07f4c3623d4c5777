package auth

import (
	"net/http"

	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// Rejection reasons produced by the gates. Each maps to one status and one fixed message.
var (
	ErrMissingToken     = apperrors.NewDomainError("MISSING_TOKEN", "JWT 토큰이 필요합니다.", http.StatusBadRequest, nil)
	ErrMalformedScheme  = apperrors.NewDomainError("MALFORMED_SCHEME", "잘못된 JWT 토큰입니다.", http.StatusBadRequest, nil)
	ErrInvalidToken     = apperrors.NewDomainError("INVALID_TOKEN", "잘못된 JWT 토큰입니다.", http.StatusBadRequest, nil)
	ErrExpiredToken     = apperrors.NewDomainError("EXPIRED_TOKEN", "만료된 JWT 토큰입니다.", http.StatusUnauthorized, nil)
	ErrInsufficientRole = apperrors.NewDomainError("INSUFFICIENT_ROLE", "관리자 권한이 없습니다.", http.StatusForbidden, nil)
)

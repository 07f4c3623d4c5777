package service

import (
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

var (
	ErrEmailTaken      = apperrors.NewInvalidRequest("이미 존재하는 이메일입니다.")
	ErrNotRegistered   = apperrors.NewInvalidRequest("가입되지 않은 유저입니다.")
	ErrWrongPassword   = apperrors.NewUnauthorized("잘못된 비밀번호입니다.")
	ErrUserNotFound    = apperrors.NewInvalidRequest("User not found")
	ErrCommentNotFound = apperrors.NewInvalidRequest("Comment not found")
	ErrInvalidRole     = apperrors.NewInvalidRequest("유효하지 않은 UserRole")
	ErrSamePassword    = apperrors.NewInvalidRequest("새 비밀번호는 기존 비밀번호와 같을 수 없습니다.")
	ErrOldPassword     = apperrors.NewInvalidRequest("잘못된 비밀번호입니다.")
)

package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
)

// ChangeUserRoleInput is the audited argument of ChangeUserRole.
type ChangeUserRoleInput struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// UserRoleChanged is the audited result of ChangeUserRole.
type UserRoleChanged struct {
	UserID   string          `json:"userId"`
	Email    string          `json:"email"`
	Previous domain.UserRole `json:"previousRole"`
	Current  domain.UserRole `json:"role"`
}

// DeleteCommentInput is the audited argument of DeleteComment.
type DeleteCommentInput struct {
	CommentID string `json:"commentId"`
}

// CommentDeleted is the audited result of DeleteComment.
type CommentDeleted struct {
	CommentID string `json:"commentId"`
	TodoID    string `json:"todoId"`
	AuthorID  string `json:"authorId"`
}

// AdminService holds the privileged operations reachable from /admin routes.
type AdminService struct {
	users    repository.UserRepository
	comments repository.CommentRepository
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, comments repository.CommentRepository) *AdminService {
	return &AdminService{users: users, comments: comments}
}

// ChangeUserRole sets a user's role.
func (s *AdminService) ChangeUserRole(ctx context.Context, in ChangeUserRoleInput) (UserRoleChanged, error) {
	role, ok := domain.ParseUserRole(in.Role)
	if !ok {
		return UserRoleChanged{}, ErrInvalidRole
	}

	user, err := findUser(ctx, s.users, in.UserID)
	if err != nil {
		return UserRoleChanged{}, err
	}
	if err := s.users.UpdateRole(ctx, user.ID, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRoleChanged{}, ErrUserNotFound
		}
		return UserRoleChanged{}, err
	}

	return UserRoleChanged{UserID: user.ID, Email: user.Email, Previous: user.Role, Current: role}, nil
}

// DeleteComment removes a comment.
func (s *AdminService) DeleteComment(ctx context.Context, in DeleteCommentInput) (CommentDeleted, error) {
	comment, err := s.comments.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CommentDeleted{}, ErrCommentNotFound
		}
		return CommentDeleted{}, err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CommentDeleted{}, ErrCommentNotFound
		}
		return CommentDeleted{}, err
	}
	return CommentDeleted{CommentID: comment.ID, TodoID: comment.TodoID, AuthorID: comment.UserID}, nil
}

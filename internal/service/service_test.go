package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fixture struct {
	users    *repository.MemoryUserRepository
	comments *repository.MemoryCommentRepository
	tokens   *auth.TokenManager
	auth     *AuthService
	user     *UserService
	admin    *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    repository.NewMemoryUserRepository(),
		comments: repository.NewMemoryCommentRepository(),
		tokens:   auth.NewTokenManager(testSecret, time.Hour),
	}
	f.auth = NewAuthService(f.users, f.tokens, bcrypt.MinCost)
	f.user = NewUserService(f.users, bcrypt.MinCost)
	f.admin = NewAdminService(f.users, f.comments)
	return f
}

func (f *fixture) claims(t *testing.T, token string) *auth.Claims {
	t.Helper()
	claims, err := f.tokens.Authenticate(token)
	require.NoError(t, err)
	return claims
}

func TestSignup_IssuesTokenForNewUser(t *testing.T) {
	f := newFixture(t)

	token, err := f.auth.Signup(context.Background(), "a@a.com", "Password1", "user")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, auth.BearerPrefix))
	claims := f.claims(t, token)
	assert.Equal(t, "a@a.com", claims.Email)
	assert.Equal(t, domain.UserRoleUser, claims.UserRole)

	stored, err := f.users.GetByID(context.Background(), claims.Subject)
	require.NoError(t, err)
	assert.NotEqual(t, "Password1", stored.PasswordHash)
}

func TestSignup_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, "a@a.com", "Password1", "USER")
	require.NoError(t, err)

	_, err = f.auth.Signup(ctx, "a@a.com", "Password1", "USER")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.EqualError(t, err, "이미 존재하는 이메일입니다.")

	_, err = f.auth.Signup(ctx, "b@b.com", "Password1", "owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSignin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, "a@a.com", "Password1", "ADMIN")
	require.NoError(t, err)

	token, err := f.auth.Signin(ctx, "a@a.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, f.claims(t, token).UserRole)

	_, err = f.auth.Signin(ctx, "nobody@a.com", "Password1")
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.EqualError(t, err, "가입되지 않은 유저입니다.")

	_, err = f.auth.Signin(ctx, "a@a.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.EqualError(t, err, "잘못된 비밀번호입니다.")
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token, err := f.auth.Signup(ctx, "a@a.com", "Password1", "USER")
	require.NoError(t, err)
	id := f.claims(t, token).Subject

	user, err := f.user.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@a.com", user.Email)

	_, err = f.user.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token, err := f.auth.Signup(ctx, "a@a.com", "Password1", "USER")
	require.NoError(t, err)
	id := f.claims(t, token).Subject

	assert.ErrorIs(t, f.user.ChangePassword(ctx, "missing", "Password1", "Password2"), ErrUserNotFound)
	assert.ErrorIs(t, f.user.ChangePassword(ctx, id, "Password1", "Password1"), ErrSamePassword)
	assert.ErrorIs(t, f.user.ChangePassword(ctx, id, "Wrong1234", "Password2"), ErrOldPassword)

	require.NoError(t, f.user.ChangePassword(ctx, id, "Password1", "Password2"))
	_, err = f.auth.Signin(ctx, "a@a.com", "Password2")
	assert.NoError(t, err)
	_, err = f.auth.Signin(ctx, "a@a.com", "Password1")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangeUserRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token, err := f.auth.Signup(ctx, "a@a.com", "Password1", "ADMIN")
	require.NoError(t, err)
	id := f.claims(t, token).Subject

	changed, err := f.admin.ChangeUserRole(ctx, ChangeUserRoleInput{UserID: id, Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, UserRoleChanged{UserID: id, Email: "a@a.com", Previous: domain.UserRoleAdmin, Current: domain.UserRoleUser}, changed)

	stored, err := f.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleUser, stored.Role)

	_, err = f.admin.ChangeUserRole(ctx, ChangeUserRoleInput{UserID: "missing", Role: "user"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.admin.ChangeUserRole(ctx, ChangeUserRoleInput{UserID: id, Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestDeleteComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comment := &domain.Comment{TodoID: "t-1", UserID: "u-1", Contents: "spam"}
	require.NoError(t, f.comments.Create(ctx, comment))

	deleted, err := f.admin.DeleteComment(ctx, DeleteCommentInput{CommentID: comment.ID})
	require.NoError(t, err)
	assert.Equal(t, CommentDeleted{CommentID: comment.ID, TodoID: "t-1", AuthorID: "u-1"}, deleted)

	_, err = f.admin.DeleteComment(ctx, DeleteCommentInput{CommentID: comment.ID})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

type brokenUsers struct {
	repository.UserRepository
}

func (brokenUsers) ExistsByEmail(context.Context, string) (bool, error) {
	return false, errors.New("db down")
}

func (brokenUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("db down")
}

func TestAuthService_PropagatesStoreFailures(t *testing.T) {
	svc := NewAuthService(brokenUsers{}, auth.NewTokenManager(testSecret, time.Hour), bcrypt.MinCost)

	_, err := svc.Signup(context.Background(), "a@a.com", "Password1", "USER")
	assert.EqualError(t, err, "db down")

	_, err = svc.Signin(context.Background(), "a@a.com", "Password1")
	assert.EqualError(t, err, "db down")
}

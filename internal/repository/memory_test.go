package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/todo-service/internal/domain"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &domain.User{Email: "a@a.com", PasswordHash: "h", Role: domain.UserRoleUser}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Error(t, repo.Create(ctx, &domain.User{Email: "a@a.com"}))

	exists, err := repo.ExistsByEmail(ctx, "a@a.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByEmail(ctx, "b@b.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.UpdateRole(ctx, user.ID, domain.UserRoleAdmin))
	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "h2"))

	got, err := repo.GetByEmail(ctx, "a@a.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, got.Role)
	assert.Equal(t, "h2", got.PasswordHash)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, repo.UpdateRole(ctx, "missing", domain.UserRoleUser), pgx.ErrNoRows)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	user := &domain.User{Email: "a@a.com", Role: domain.UserRoleUser}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	got.Role = domain.UserRoleAdmin

	again, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleUser, again.Role)
}

func TestMemoryCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCommentRepository()

	comment := &domain.Comment{TodoID: "t-1", UserID: "u-1", Contents: "hi"}
	require.NoError(t, repo.Create(ctx, comment))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Contents)

	require.NoError(t, repo.Delete(ctx, comment.ID))
	assert.ErrorIs(t, repo.Delete(ctx, comment.ID), pgx.ErrNoRows)
	_, err = repo.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMemoryRepositories_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	user := &domain.User{Email: "a@a.com", Role: domain.UserRoleUser}
	require.NoError(t, repo.Create(ctx, user))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := domain.UserRoleUser
			if i%2 == 0 {
				role = domain.UserRoleAdmin
			}
			_ = repo.UpdateRole(ctx, user.ID, role)
			_, _ = repo.GetByID(ctx, user.ID)
		}(i)
	}
	wg.Wait()
}

var (
	_ UserRepository    = (*MemoryUserRepository)(nil)
	_ CommentRepository = (*MemoryCommentRepository)(nil)
)

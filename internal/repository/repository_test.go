package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/db"
	"blogapi/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.Author{}, &model.Post{}, &model.User{}))
	return gormDB
}

func TestAuthorRepository_DuplicateEmail(t *testing.T) {
	repo := NewAuthorRepository(openTestDB(t))
	ctx := context.Background()

	first := &model.Author{Name: "A", Email: "a@x.com", Number: "123"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &model.Author{Name: "B", Email: "a@x.com", Number: "456"}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestAuthorRepository_DuplicateNumber(t *testing.T) {
	repo := NewAuthorRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Author{Name: "A", Email: "a@x.com", Number: "123"}))
	err := repo.Create(ctx, &model.Author{Name: "B", Email: "b@x.com", Number: "123"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestAuthorRepository_NotFound(t *testing.T) {
	repo := NewAuthorRepository(openTestDB(t))

	_, err := repo.FindByID(context.Background(), 12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_ListWithAuthor(t *testing.T) {
	gormDB := openTestDB(t)
	authors := NewAuthorRepository(gormDB)
	posts := NewPostRepository(gormDB)
	ctx := context.Background()

	author := &model.Author{Name: "A", Email: "a@x.com", Number: "123"}
	require.NoError(t, authors.Create(ctx, author))
	require.NoError(t, posts.Create(ctx, &model.Post{Title: "T1", Content: "C1", AuthorID: author.ID}))
	require.NoError(t, posts.Create(ctx, &model.Post{Title: "T2", Content: "C2", AuthorID: author.ID}))

	list, err := posts.ListWithAuthor(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		require.NotNil(t, p.Author)
		assert.Equal(t, "A", p.Author.Name)
	}
}

func TestAuthorRepository_DeleteKeepsPosts(t *testing.T) {
	gormDB := openTestDB(t)
	authors := NewAuthorRepository(gormDB)
	posts := NewPostRepository(gormDB)
	ctx := context.Background()

	author := &model.Author{Name: "A", Email: "a@x.com", Number: "123"}
	require.NoError(t, authors.Create(ctx, author))
	post := &model.Post{Title: "T", Content: "C", AuthorID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, authors.Delete(ctx, author.ID))

	// The post row survives its author.
	survivor, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, survivor.AuthorID)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Name: "U", Email: "u@x.com", PasswordHash: "hash"}))

	found, err := repo.FindByEmail(ctx, "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, "U", found.Name)

	_, err = repo.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

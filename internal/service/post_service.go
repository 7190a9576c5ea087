package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const (
	postListCacheKey = "posts:all"
	postListCacheTTL = time.Minute
)

// FileRemover deletes a stored upload by its logical path. Removal is best
// effort and never fails the surrounding operation.
type FileRemover interface {
	Remove(logicalPath string)
}

// CreatePostInput carries the fields for a new post. ImagePath is the logical
// path of an already-stored upload, or empty.
type CreatePostInput struct {
	Title     string
	Content   string
	AuthorID  uint
	ImagePath string
}

// UpdatePostInput carries a partial post update. Zero AuthorID means keep the
// current author; empty ImagePath means keep the current image.
type UpdatePostInput struct {
	Title     string
	Content   string
	AuthorID  uint
	ImagePath string
}

// PostService handles blog post CRUD and keeps the image files on disk
// consistent with the database rows.
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, input CreatePostInput) (*model.Post, error)
	Update(ctx context.Context, id uint, input UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id uint) (*model.Post, error)
}

type postService struct {
	posts   repository.PostRepository
	authors repository.AuthorRepository
	files   FileRemover
	cache   *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, authors repository.AuthorRepository, files FileRemover, cacheClient *cache.Client) PostService {
	return &postService{
		posts:   posts,
		authors: authors,
		files:   files,
		cache:   cacheClient,
	}
}

// List returns all posts newest first with authors included, briefly cached.
func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	if data, _ := s.cache.Get(ctx, postListCacheKey); data != nil {
		var cached []model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.posts.ListWithAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	if payload, err := json.Marshal(posts); err == nil {
		_ = s.cache.Set(ctx, postListCacheKey, payload, postListCacheTTL)
	}

	return posts, nil
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.FindByIDWithAuthor(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// Create stores a new post after verifying the referenced author exists. The
// image file has already been written by the caller; if the row cannot be
// committed the file is removed again.
func (s *postService) Create(ctx context.Context, input CreatePostInput) (*model.Post, error) {
	if _, err := s.authors.FindByID(ctx, input.AuthorID); err != nil {
		s.files.Remove(input.ImagePath)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	post := &model.Post{
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  input.AuthorID,
		ImagePath: input.ImagePath,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		s.files.Remove(input.ImagePath)
		return nil, fmt.Errorf("create post: %w", err)
	}

	_ = s.cache.Delete(ctx, postListCacheKey)
	return s.posts.FindByIDWithAuthor(ctx, post.ID)
}

// Update modifies a post. A replacement image is committed to the row first
// and the superseded file deleted after; on commit failure the new file is
// removed instead, so disk and row stay consistent either way.
func (s *postService) Update(ctx context.Context, id uint, input UpdatePostInput) (*model.Post, error) {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		s.files.Remove(input.ImagePath)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if input.AuthorID != 0 {
		if _, err := s.authors.FindByID(ctx, input.AuthorID); err != nil {
			s.files.Remove(input.ImagePath)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrAuthorNotFound
			}
			return nil, fmt.Errorf("find author: %w", err)
		}
		existing.AuthorID = input.AuthorID
	}

	oldImage := existing.ImagePath
	existing.Title = input.Title
	existing.Content = input.Content
	if input.ImagePath != "" {
		existing.ImagePath = input.ImagePath
	}

	if err := s.posts.Update(ctx, existing); err != nil {
		s.files.Remove(input.ImagePath)
		return nil, fmt.Errorf("update post: %w", err)
	}

	if input.ImagePath != "" && oldImage != "" {
		s.files.Remove(oldImage)
	}

	_ = s.cache.Delete(ctx, postListCacheKey)
	return s.posts.FindByIDWithAuthor(ctx, existing.ID)
}

// Delete removes the row and then best-effort deletes the stored image.
func (s *postService) Delete(ctx context.Context, id uint) (*model.Post, error) {
	existing, err := s.posts.FindByIDWithAuthor(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}

	s.files.Remove(existing.ImagePath)
	_ = s.cache.Delete(ctx, postListCacheKey)
	return existing, nil
}

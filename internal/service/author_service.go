package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// AuthorInput carries the writable author fields.
type AuthorInput struct {
	Name   string
	Email  string
	Number string
}

// AuthorService handles author CRUD.
type AuthorService interface {
	List(ctx context.Context) ([]model.Author, error)
	ListPlain(ctx context.Context) ([]model.Author, error)
	Create(ctx context.Context, input AuthorInput) (*model.Author, error)
	Update(ctx context.Context, id uint, input AuthorInput) (*model.Author, error)
	Delete(ctx context.Context, id uint) (*model.Author, error)
}

type authorService struct {
	authors repository.AuthorRepository
}

// NewAuthorService creates a new author service.
func NewAuthorService(authors repository.AuthorRepository) AuthorService {
	return &authorService{authors: authors}
}

// List returns all authors, name ascending, posts included.
func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	return s.authors.ListWithPosts(ctx)
}

// ListPlain returns all authors without their posts, for form dropdowns.
func (s *authorService) ListPlain(ctx context.Context) ([]model.Author, error) {
	return s.authors.List(ctx)
}

func (s *authorService) Create(ctx context.Context, input AuthorInput) (*model.Author, error) {
	author := &model.Author{
		Name:   input.Name,
		Email:  input.Email,
		Number: input.Number,
	}
	if err := s.authors.Create(ctx, author); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateContact
		}
		return nil, fmt.Errorf("create author: %w", err)
	}
	return author, nil
}

func (s *authorService) Update(ctx context.Context, id uint, input AuthorInput) (*model.Author, error) {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	author.Name = input.Name
	author.Email = input.Email
	author.Number = input.Number

	if err := s.authors.Update(ctx, author); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateContact
		}
		return nil, fmt.Errorf("update author: %w", err)
	}
	return author, nil
}

// Delete removes an author. Posts are left in place; whether they should be
// cascaded or block deletion is an open product decision.
func (s *authorService) Delete(ctx context.Context, id uint) (*model.Author, error) {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	if err := s.authors.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete author: %w", err)
	}
	return author, nil
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/internal/upload"
)

// ViewHandler serves the server-rendered blog pages. Errors surface as plain
// text; successful form submissions redirect back to the list.
type ViewHandler struct {
	postService   service.PostService
	authorService service.AuthorService
	uploads       *upload.Store
}

// NewViewHandler creates a new view handler.
func NewViewHandler(postService service.PostService, authorService service.AuthorService, uploads *upload.Store) *ViewHandler {
	return &ViewHandler{postService: postService, authorService: authorService, uploads: uploads}
}

type formPage struct {
	Mode    string
	Post    *model.Post
	Authors []model.Author
}

// ListPosts renders the post list, newest first.
func (h *ViewHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return c.String(http.StatusInternalServerError, "Failed to load posts")
	}
	return c.Render(http.StatusOK, "list", echo.Map{"Posts": posts})
}

// RenderCreate renders the empty post form.
func (h *ViewHandler) RenderCreate(c echo.Context) error {
	authors, err := h.authorService.ListPlain(c.Request().Context())
	if err != nil {
		return c.String(http.StatusInternalServerError, "Failed to load form")
	}
	return c.Render(http.StatusOK, "form", formPage{Mode: "create", Authors: authors})
}

// CreatePost handles the new-post form submission.
func (h *ViewHandler) CreatePost(c echo.Context) error {
	authorID, err := strconv.ParseUint(c.FormValue("authorId"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "authorId must be a valid number")
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	_, err = h.postService.Create(c.Request().Context(), service.CreatePostInput{
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		AuthorID:  uint(authorID),
		ImagePath: imagePath,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthorNotFound) {
			return c.String(http.StatusNotFound, err.Error())
		}
		return c.String(http.StatusInternalServerError, "Failed to create post")
	}

	return c.Redirect(http.StatusFound, "/blog-view")
}

// RenderEdit renders the edit form for an existing post.
func (h *ViewHandler) RenderEdit(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "id must be a valid number")
	}

	post, err := h.postService.Get(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return c.String(http.StatusNotFound, "Post not found")
		}
		return c.String(http.StatusInternalServerError, "Failed to load form")
	}

	authors, err := h.authorService.ListPlain(c.Request().Context())
	if err != nil {
		return c.String(http.StatusInternalServerError, "Failed to load form")
	}

	return c.Render(http.StatusOK, "form", formPage{Mode: "edit", Post: post, Authors: authors})
}

// UpdatePost handles the edit form submission.
func (h *ViewHandler) UpdatePost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "id must be a valid number")
	}

	var authorID uint
	if raw := c.FormValue("authorId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.String(http.StatusBadRequest, "authorId must be a valid number")
		}
		authorID = uint(parsed)
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	_, err = h.postService.Update(c.Request().Context(), uint(id), service.UpdatePostInput{
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		AuthorID:  authorID,
		ImagePath: imagePath,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) || errors.Is(err, apperrors.ErrAuthorNotFound) {
			return c.String(http.StatusNotFound, err.Error())
		}
		return c.String(http.StatusInternalServerError, "Failed to update post")
	}

	return c.Redirect(http.StatusFound, "/blog-view")
}

// DeletePost handles the delete form submission.
func (h *ViewHandler) DeletePost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "id must be a valid number")
	}

	if _, err := h.postService.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return c.String(http.StatusNotFound, "Post not found")
		}
		return c.String(http.StatusInternalServerError, "Failed to delete post")
	}

	return c.Redirect(http.StatusFound, "/blog-view")
}

func (h *ViewHandler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return h.uploads.Save(file)
}

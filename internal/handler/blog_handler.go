package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/service"
	"blogapi/internal/upload"
)

// BlogHandler handles the JSON blog API.
type BlogHandler struct {
	postService service.PostService
	uploads     *upload.Store
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(postService service.PostService, uploads *upload.Store) *BlogHandler {
	return &BlogHandler{postService: postService, uploads: uploads}
}

// BlogRequest represents a blog create/update body. Accepted both as JSON and
// as a multipart form carrying an optional "image" file. AuthorID is loosely
// typed because JSON clients send numbers while forms send strings.
type BlogRequest struct {
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	AuthorID interface{} `json:"authorId"`
}

// bindBlogRequest reads the body either as JSON or as (multipart) form values.
func bindBlogRequest(c echo.Context) (BlogRequest, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var req BlogRequest
		err := c.Bind(&req)
		return req, err
	}
	req := BlogRequest{Title: c.FormValue("title"), Content: c.FormValue("content")}
	if v := c.FormValue("authorId"); v != "" {
		req.AuthorID = v
	}
	return req, nil
}

func parseAuthorID(v interface{}) (uint, bool) {
	switch id := v.(type) {
	case float64:
		if id < 0 {
			return 0, false
		}
		return uint(id), true
	case string:
		parsed, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

// writeAPIError maps domain errors onto the {error, details} envelope. Unknown
// failures get the operation-specific fallback message with details attached.
func writeAPIError(c echo.Context, err error, fallback string) error {
	switch err {
	case apperrors.ErrAuthorNotFound, apperrors.ErrPostNotFound, apperrors.ErrDuplicateContact, apperrors.ErrNotImage:
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	default:
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error:   fallback,
			Details: err.Error(),
		})
	}
}

// saveImage stores the optional "image" form file and returns its logical
// path, or "" when the request carries no file.
func (h *BlogHandler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return h.uploads.Save(file)
}

// List godoc
// @Summary List all blog posts with their authors
// @Tags blog
// @Produce json
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog [get]
func (h *BlogHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return writeAPIError(c, err, "Failed to fetch blogs")
	}
	return c.JSON(http.StatusOK, posts)
}

// Create godoc
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body BlogRequest true "Post fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	req, err := bindBlogRequest(c)
	if err != nil {
		return sendError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" || req.AuthorID == nil {
		return sendError(c, http.StatusBadRequest, "Title, authorId, and content are required")
	}
	authorID, ok := parseAuthorID(req.AuthorID)
	if !ok {
		return sendError(c, http.StatusBadRequest, "authorId must be a valid number")
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return writeAPIError(c, err, "Failed to store image")
	}

	post, err := h.postService.Create(c.Request().Context(), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		ImagePath: imagePath,
	})
	if err != nil {
		return writeAPIError(c, err, "Failed to create blog")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Blog created successfully!",
		"createdBlog": post,
	})
}

// Update godoc
// @Summary Update a blog post
// @Tags blog
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path int true "Post ID"
// @Param request body BlogRequest true "Post fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return sendError(c, http.StatusBadRequest, "id must be a valid number")
	}

	req, err := bindBlogRequest(c)
	if err != nil {
		return sendError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" || req.AuthorID == nil {
		return sendError(c, http.StatusBadRequest, "Title, authorId, and content are required")
	}
	authorID, ok := parseAuthorID(req.AuthorID)
	if !ok {
		return sendError(c, http.StatusBadRequest, "authorId must be a valid number")
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return writeAPIError(c, err, "Failed to store image")
	}

	post, err := h.postService.Update(c.Request().Context(), uint(id), service.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		ImagePath: imagePath,
	})
	if err != nil {
		return writeAPIError(c, err, "Failed to update blog")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Blog updated successfully!",
		"updated": post,
	})
}

// Delete godoc
// @Summary Delete a blog post and its stored image
// @Tags blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return sendError(c, http.StatusBadRequest, "id must be a valid number")
	}

	post, err := h.postService.Delete(c.Request().Context(), uint(id))
	if err != nil {
		return writeAPIError(c, err, "Failed to delete blog")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Blog deleted successfully!",
		"deleted": post,
	})
}

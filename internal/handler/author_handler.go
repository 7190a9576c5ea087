package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/service"
)

// AuthorHandler handles the JSON author API.
type AuthorHandler struct {
	authorService service.AuthorService
}

// NewAuthorHandler creates a new author handler.
func NewAuthorHandler(authorService service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// AuthorRequest represents an author create/update body.
type AuthorRequest struct {
	Name   string `json:"name" form:"name" validate:"required"`
	Email  string `json:"email" form:"email" validate:"required,email"`
	Number string `json:"number" form:"number" validate:"required"`
}

// List godoc
// @Summary List all authors with their posts
// @Tags authors
// @Produce json
// @Success 200 {array} model.Author
// @Failure 500 {object} errors.ErrorResponse
// @Router /authors [get]
func (h *AuthorHandler) List(c echo.Context) error {
	authors, err := h.authorService.List(c.Request().Context())
	if err != nil {
		return writeAPIError(c, err, "Failed to fetch authors")
	}
	return c.JSON(http.StatusOK, authors)
}

// Create godoc
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Param request body AuthorRequest true "Author fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /authors [post]
func (h *AuthorHandler) Create(c echo.Context) error {
	var req AuthorRequest
	if err := c.Bind(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	author, err := h.authorService.Create(c.Request().Context(), service.AuthorInput{
		Name:   req.Name,
		Email:  req.Email,
		Number: req.Number,
	})
	if err != nil {
		return writeAPIError(c, err, "Failed to create author")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Author created successfully!",
		"createdAuthor": author,
	})
}

// Update godoc
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param request body AuthorRequest true "Author fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /authors/{id} [put]
func (h *AuthorHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return sendError(c, http.StatusBadRequest, "id must be a valid number")
	}

	var req AuthorRequest
	if err := c.Bind(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	author, err := h.authorService.Update(c.Request().Context(), uint(id), service.AuthorInput{
		Name:   req.Name,
		Email:  req.Email,
		Number: req.Number,
	})
	if err != nil {
		return writeAPIError(c, err, "Failed to update author")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Author updated successfully!",
		"updated": author,
	})
}

// Delete godoc
// @Summary Delete an author (posts are not cascaded)
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /authors/{id} [delete]
func (h *AuthorHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return sendError(c, http.StatusBadRequest, "id must be a valid number")
	}

	author, err := h.authorService.Delete(c.Request().Context(), uint(id))
	if err != nil {
		return writeAPIError(c, err, "Failed to delete author")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Author deleted successfully!",
		"deleted": author,
	})
}

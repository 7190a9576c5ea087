package handler

import "github.com/labstack/echo/v4"

// APIResponse is the auth API envelope.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func sendSuccess(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, APIResponse{Status: "success", Message: message, Data: data})
}

func sendError(c echo.Context, code int, message string) error {
	return c.JSON(code, APIResponse{Status: "error", Message: message})
}

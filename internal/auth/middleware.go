package auth

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapi/internal/repository"
)

// ContextUserKey is the echo context key the resolved user is stored under.
const ContextUserKey = "currentUser"

// CurrentUser is the request-scoped identity attached by ResolveUser.
type CurrentUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// tokenClaims mirrors Claims for the verification middleware. echo-jwt parses
// with golang-jwt/v5 while tokens are issued with v4; the wire format is the
// same HS256 JWT.
type tokenClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwtv5.RegisteredClaims
}

func rejectUnauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"status":  "error",
		"message": message,
	})
}

// Middleware returns the token-verification middleware. It rejects requests
// with a missing, malformed, or expired bearer token.
func Middleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwtv5.Claims {
			return &tokenClaims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return rejectUnauthorized(c, "Invalid or expired token.")
		},
	})
}

// ResolveUser looks up the user behind the verified token and attaches
// {id, email, name} to the request context. Runs after Middleware.
func ResolveUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return rejectUnauthorized(c, "Invalid or expired token.")
			}
			claims, ok := token.Claims.(*tokenClaims)
			if !ok {
				return rejectUnauthorized(c, "Invalid or expired token.")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return rejectUnauthorized(c, "User not found.")
			}

			c.Set(ContextUserKey, &CurrentUser{ID: user.ID, Email: user.Email, Name: user.Name})
			return next(c)
		}
	}
}

// UserFromContext returns the identity attached by ResolveUser, or nil.
func UserFromContext(c echo.Context) *CurrentUser {
	user, _ := c.Get(ContextUserKey).(*CurrentUser)
	return user
}

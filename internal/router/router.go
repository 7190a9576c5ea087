package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/handler"
	"blogapi/internal/rate"
	"blogapi/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	limiter rate.Limiter,
	users repository.UserRepository,
	blogHandler *handler.BlogHandler,
	authorHandler *handler.AuthorHandler,
	authHandler *handler.AuthHandler,
	viewHandler *handler.ViewHandler,
	uploadDir string,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(rate.Middleware(limiter, "general", cfg.RateGeneralMax, cfg.RateWindow))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images are served straight from the upload directory.
	e.Static("/uploads", uploadDir)

	api := e.Group("/api")

	api.GET("/blog", blogHandler.List)
	api.POST("/blog", blogHandler.Create)
	api.PUT("/blog/:id", blogHandler.Update)
	api.DELETE("/blog/:id", blogHandler.Delete)

	api.GET("/authors", authorHandler.List)
	api.POST("/authors", authorHandler.Create)
	api.PUT("/authors/:id", authorHandler.Update)
	api.DELETE("/authors/:id", authorHandler.Delete)

	authGroup := api.Group("/auth")
	authLimit := rate.Middleware(limiter, "auth", cfg.RateAuthMax, cfg.RateWindow)
	authGroup.POST("/register", authHandler.Register, authLimit)
	authGroup.POST("/login", authHandler.Login, authLimit)

	authed := authGroup.Group("", auth.Middleware(cfg.JWTSecret), auth.ResolveUser(users))
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/profile", authHandler.Profile)

	views := e.Group("/blog-view")
	views.GET("", viewHandler.ListPosts)
	views.GET("/new", viewHandler.RenderCreate)
	views.POST("", viewHandler.CreatePost)
	views.GET("/:id/edit", viewHandler.RenderEdit)
	views.POST("/:id/update", viewHandler.UpdatePost)
	views.POST("/:id/delete", viewHandler.DeletePost)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

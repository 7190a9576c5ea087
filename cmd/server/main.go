package main

import (
	"log"
	"net/http"

	_ "blogapi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handler"
	"blogapi/internal/mail"
	"blogapi/internal/model"
	"blogapi/internal/rate"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
	"blogapi/internal/upload"
	"blogapi/internal/view"
)

// @title Blog API
// @version 1.0
// @description Blog content-management API with post/author CRUD and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Author{},
		&model.Post{},
		&model.User{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir init: %v", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("template init: %v", err)
	}
	e.Renderer = renderer

	authorRepo := repository.NewAuthorRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	mailer := mail.New(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword, cfg.EmailFrom)
	limiter := rate.NewMemory()

	authService := service.NewAuthService(userRepo, jwtService, mailer)
	authorService := service.NewAuthorService(authorRepo)
	postService := service.NewPostService(postRepo, authorRepo, uploads, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	authorHandler := handler.NewAuthorHandler(authorService)
	blogHandler := handler.NewBlogHandler(postService, uploads)
	viewHandler := handler.NewViewHandler(postService, authorService, uploads)

	router.Register(
		e,
		cfg,
		limiter,
		userRepo,
		blogHandler,
		authorHandler,
		authHandler,
		viewHandler,
		uploads.Dir(),
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

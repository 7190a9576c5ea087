package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

//go:embed authors.json
var authorsJSON []byte

//go:embed blog.json
var blogJSON []byte

// SeedAuthor is an author record from the bundled seed data.
type SeedAuthor struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Number string `json:"number"`
}

// SeedPost is a post record from the bundled seed data, keyed to its author by name.
type SeedPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

func main() {
	log.Println("Starting database seed...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Author{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var authors []SeedAuthor
	if err := json.Unmarshal(authorsJSON, &authors); err != nil {
		log.Fatalf("Failed to parse authors data: %v", err)
	}
	var posts []SeedPost
	if err := json.Unmarshal(blogJSON, &posts); err != nil {
		log.Fatalf("Failed to parse blog data: %v", err)
	}

	// Clear existing data so the seed is repeatable.
	log.Println("Clearing existing data...")
	if err := gormDB.Exec("DELETE FROM posts").Error; err != nil {
		log.Fatalf("Failed to clear posts: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM authors").Error; err != nil {
		log.Fatalf("Failed to clear authors: %v", err)
	}

	ctx := context.Background()
	authorRepo := repository.NewAuthorRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	log.Println("Seeding authors...")
	authorIDs := make(map[string]uint, len(authors))
	for _, a := range authors {
		author := &model.Author{Name: a.Name, Email: a.Email, Number: a.Number}
		if err := authorRepo.Create(ctx, author); err != nil {
			log.Fatalf("Failed to create author %s: %v", a.Name, err)
		}
		authorIDs[author.Name] = author.ID
		log.Printf("Created author: %s", author.Name)
	}

	log.Println("Seeding posts...")
	for _, p := range posts {
		authorID, ok := authorIDs[p.Author]
		if !ok {
			log.Printf("Author %q not found for post %q. Skipping...", p.Author, p.Title)
			continue
		}
		post := &model.Post{Title: p.Title, Content: p.Content, AuthorID: authorID}
		if err := postRepo.Create(ctx, post); err != nil {
			log.Fatalf("Failed to create post %s: %v", p.Title, err)
		}
		log.Printf("Created post: %s by %s", p.Title, p.Author)
	}

	log.Println("Seed completed successfully!")
}

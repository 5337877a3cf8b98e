// Package main provides a tool to seed the database with demo content.
//
// It ensures the admin account exists and creates a handful of published
// articles, projects, books, figures, tools, and timeline entries so a fresh
// install has something to render.
//
// Usage:
//
//	DATABASE_PATH=./data/nyeweb.db ADMIN_PASSWORD=changeme go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/nyeweb/nyeweb-server/internal/category"
	"github.com/nyeweb/nyeweb-server/internal/mirror"
	"github.com/nyeweb/nyeweb-server/internal/service"
	"github.com/nyeweb/nyeweb-server/internal/store/sqlite"
	"github.com/nyeweb/nyeweb-server/internal/validation"
)

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/nyeweb.db"
	}
	distRoot := os.Getenv("FRONTEND_DIST_ROOT")
	if distRoot == "" {
		distRoot = "./dist"
	}
	publicRoot := os.Getenv("FRONTEND_PUBLIC_ROOT")
	if publicRoot == "" {
		publicRoot = "./public"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	m := mirror.New(distRoot, publicRoot)
	cache, err := category.NewCache(category.NewScanner(distRoot), logger)
	if err != nil {
		log.Fatalf("Failed to build category cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()

	auth := service.NewAuthService(s, logger)
	if err := auth.Bootstrap(ctx, "admin", adminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}
	fmt.Println("Admin account ready")

	articles := service.NewArticleService(s, m, cache, logger)
	for _, in := range []service.CreateArticleInput{
		{
			Title:    "Hello World",
			Category: "notes",
			Summary:  "First post on the new site.",
			Content:  "Welcome. This site is a personal collection of notes, projects, and reading.",
			Status:   "published",
			Tags:     []string{"meta"},
		},
		{
			Title:    "Structuring Go Services",
			Category: "notes/go",
			Summary:  "Store, service, and handler layers.",
			Content:  "Keep the store behind an interface, keep handlers thin, let services own the rules.",
			Status:   "published",
			Tags:     []string{"go", "architecture"},
		},
	} {
		if _, err := articles.Create(ctx, in); err != nil {
			log.Printf("Skipping article %q: %v", in.Title, err)
			continue
		}
		fmt.Printf("Created article: %s\n", in.Title)
	}

	projects := service.NewProjectService(s, m, cache, logger)
	if _, err := projects.Create(ctx, service.CreateProjectInput{
		Title:   "NyeWeb",
		Summary: "This site and its backend.",
		Content: "A small content backend with a SQLite store and a markdown file mirror.",
		Status:  "published",
		Tags:    []string{"go", "web"},
	}); err != nil {
		log.Printf("Skipping project: %v", err)
	} else {
		fmt.Println("Created project: NyeWeb")
	}

	books := service.NewBookService(s, logger)
	if _, err := books.Create(ctx, service.CreateBookInput{
		Title:       "The Go Programming Language",
		Description: "Donovan and Kernighan.",
		Status:      "published",
		Tags:        []string{"go", "reference"},
	}); err != nil {
		log.Printf("Skipping book: %v", err)
	} else {
		fmt.Println("Created book: The Go Programming Language")
	}

	figures := service.NewFigureService(s, logger)
	if _, err := figures.Create(ctx, service.CreateFigureInput{
		Title:    "Gopher",
		Filename: "gopher.png",
		Status:   "published",
		Tags:     []string{"mascot"},
	}); err != nil {
		log.Printf("Skipping figure: %v", err)
	} else {
		fmt.Println("Created figure: Gopher")
	}

	tools := service.NewToolService(s, validation.New(), logger)
	if _, err := tools.Create(ctx, service.CreateToolInput{
		Title:       "pkg.go.dev",
		Description: "Go package documentation.",
		URL:         "https://pkg.go.dev",
		Status:      "published",
		Tags:        []string{"go", "docs"},
	}); err != nil {
		log.Printf("Skipping tool: %v", err)
	} else {
		fmt.Println("Created tool: pkg.go.dev")
	}

	timeline := service.NewTimelineService(s, logger)
	if _, err := timeline.Create(ctx, "", "Site seeded with demo content."); err != nil {
		log.Printf("Skipping timeline entry: %v", err)
	} else {
		fmt.Println("Created timeline entry")
	}

	fmt.Println("\nDone.")
}

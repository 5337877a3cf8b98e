// Package main provides a read-only inspection tool for the content database.
//
// Usage:
//
//	DATABASE_PATH=./data/nyeweb.db go run ./cmd/dbinspect
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/nyeweb.db"
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	statusTables := []string{"articles", "projects", "books", "figures", "tools"}
	for _, table := range statusTables {
		var draft, published, recycled int
		row := db.QueryRow(fmt.Sprintf(
			`SELECT
				COUNT(CASE WHEN status = 0 THEN 1 END),
				COUNT(CASE WHEN status = 1 THEN 1 END),
				COUNT(CASE WHEN status = 2 THEN 1 END)
			FROM %s`, table))
		if err := row.Scan(&draft, &published, &recycled); err != nil {
			log.Printf("Failed to count %s: %v", table, err)
			continue
		}
		fmt.Printf("%-16s draft=%-4d published=%-4d recycled=%d\n",
			table, draft, published, recycled)
	}

	for _, table := range []string{"favorite_images", "timeline", "tags", "admins"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			log.Printf("Failed to count %s: %v", table, err)
			continue
		}
		fmt.Printf("%-16s total=%d\n", table, count)
	}

	fmt.Println()
	fmt.Println("Most used tags:")
	rows, err := db.Query(`
		SELECT t.name,
			(SELECT COUNT(*) FROM article_tags WHERE tag_id = t.id) +
			(SELECT COUNT(*) FROM project_tags WHERE tag_id = t.id) +
			(SELECT COUNT(*) FROM book_tags WHERE tag_id = t.id) +
			(SELECT COUNT(*) FROM figure_tags WHERE tag_id = t.id) +
			(SELECT COUNT(*) FROM tool_tags WHERE tag_id = t.id) AS uses
		FROM tags t
		ORDER BY uses DESC, t.name
		LIMIT 10`)
	if err != nil {
		log.Fatalf("Failed to query tags: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var uses int
		if err := rows.Scan(&name, &uses); err != nil {
			log.Fatalf("Failed to scan tag: %v", err)
		}
		fmt.Printf("  %-24s %d\n", name, uses)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to iterate tags: %v", err)
	}

	fmt.Println()
	fmt.Println("Recent articles:")
	rows, err = db.Query(`SELECT id, title, slug, status FROM articles ORDER BY id DESC LIMIT 5`)
	if err != nil {
		log.Fatalf("Failed to query articles: %v", err)
	}
	defer rows.Close()

	statusNames := map[int]string{0: "draft", 1: "published", 2: "recycled"}
	for rows.Next() {
		var id, status int
		var title, slug string
		if err := rows.Scan(&id, &title, &slug, &status); err != nil {
			log.Fatalf("Failed to scan article: %v", err)
		}
		fmt.Printf("  #%-4d %-32s %-24s %s\n", id, title, slug, statusNames[status])
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to iterate articles: %v", err)
	}
}

// Package category derives the article category tree from the mirrored
// markdown files on disk. The walk is authoritative for which categories
// exist; it is intentionally decoupled from the category column stored on
// article rows.
package category

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// assetsDirName is the frontend assets folder, never a category.
const assetsDirName = "assets"

// reservedFilenames are markdown files that do not count as articles.
var reservedFilenames = map[string]struct{}{
	"readme.md": {},
	"index.md":  {},
	".gitkeep":  {},
}

// Category is one directory of the mirrored article tree.
type Category struct {
	Path     string   `json:"path"`
	Count    int      `json:"count"`
	Articles []string `json:"articles"`
}

// Scanner walks the built frontend's article tree.
type Scanner struct {
	root string
}

// NewScanner returns a Scanner over the article directory below the built
// frontend root.
func NewScanner(distRoot string) *Scanner {
	return &Scanner{root: filepath.Join(distRoot, "articles")}
}

// Scan walks the article tree and returns one entry per subdirectory, with
// paths relative to the tree root and separators normalized to "/". Hidden
// directories, the assets directory, and the root itself are skipped.
// A missing root yields an empty tree.
func (s *Scanner) Scan() ([]Category, error) {
	if _, err := os.Stat(s.root); err != nil {
		if os.IsNotExist(err) {
			return []Category{}, nil
		}
		return nil, err
	}

	byPath := map[string]*Category{}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || name == assetsDirName {
				return filepath.SkipDir
			}
			byPath[rel] = &Category{Path: rel, Articles: []string{}}
			return nil
		}

		dir := filepath.ToSlash(filepath.Dir(rel))
		if dir == "." {
			// Files directly under the root belong to no category.
			return nil
		}
		name := strings.ToLower(d.Name())
		if _, reserved := reservedFilenames[name]; reserved {
			return nil
		}
		if !strings.HasSuffix(name, ".md") {
			return nil
		}

		c, ok := byPath[dir]
		if !ok {
			return nil
		}
		c.Count++
		c.Articles = append(c.Articles, strings.TrimSuffix(d.Name(), ".md"))
		return nil
	})
	if err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(byPath))
	for _, c := range byPath {
		sort.Strings(c.Articles)
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Path < categories[j].Path })

	return categories, nil
}

// Package mirror keeps on-disk markdown copies of article and project
// content. The database row is the source of truth; the mirrored files are a
// derived projection written best-effort into two static-serving roots.
package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Mirror writes {slug}.md files below two parallel static roots: the built
// frontend output and the frontend public source tree.
type Mirror struct {
	distRoot   string
	publicRoot string
}

// New returns a Mirror over the two static roots.
func New(distRoot, publicRoot string) *Mirror {
	return &Mirror{distRoot: distRoot, publicRoot: publicRoot}
}

// Roots returns the two mirror roots, dist first.
func (m *Mirror) Roots() []string {
	return []string{m.distRoot, m.publicRoot}
}

// Save writes the markdown file for an entity under relDir in both roots,
// creating directories as needed. When content does not already start with a
// heading marker, a level-1 heading derived from the title is prepended.
func (m *Mirror) Save(relDir, slug, title, content string) error {
	if !strings.HasPrefix(content, "#") {
		content = fmt.Sprintf("# %s\n\n%s", title, content)
	}

	var errs []error
	for _, root := range m.Roots() {
		dir := filepath.Join(root, filepath.FromSlash(relDir))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			errs = append(errs, fmt.Errorf("mkdir %s: %w", dir, err))
			continue
		}
		path := filepath.Join(dir, slug+".md")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// Delete removes the mirrored file from both roots. Absence is not an error.
func (m *Mirror) Delete(relDir, slug string) error {
	var errs []error
	for _, root := range m.Roots() {
		path := filepath.Join(root, filepath.FromSlash(relDir), slug+".md")
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

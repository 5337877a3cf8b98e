package category

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Cache memoizes the scanned category tree and invalidates it when the
// mirrored markdown tree changes on disk.
type Cache struct {
	scanner *Scanner
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	tree  []Category
	valid bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewCache starts watching the scanner's tree. When the tree cannot be
// watched (for example because the frontend is not built yet) the cache
// degrades to rescanning on every read.
func NewCache(scanner *Scanner, logger *slog.Logger) (*Cache, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	c := &Cache{
		scanner: scanner,
		logger:  logger,
		watcher: watcher,
		done:    make(chan struct{}),
	}

	if err := c.watchTree(scanner.root); err != nil {
		logger.Warn("category tree not watchable, caching disabled", "root", scanner.root, "error", err)
	}

	c.wg.Add(1)
	go c.run()

	return c, nil
}

// watchTree adds watches for the root and every subdirectory.
func (c *Cache) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := c.watcher.Add(path); err != nil {
			c.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (c *Cache) run() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := c.watcher.Add(event.Name); err != nil {
						c.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			c.Invalidate()
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn("category watcher error", "error", err)
		}
	}
}

// Categories returns the cached tree, rescanning when invalid.
func (c *Cache) Categories() ([]Category, error) {
	c.mu.RLock()
	if c.valid {
		tree := c.tree
		c.mu.RUnlock()
		return tree, nil
	}
	c.mu.RUnlock()

	tree, err := c.scanner.Scan()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tree = tree
	c.valid = true
	c.mu.Unlock()

	return tree, nil
}

// Invalidate drops the cached tree so the next read rescans.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.tree = nil
	c.mu.Unlock()
}

// Close stops the watcher goroutine.
func (c *Cache) Close() error {
	close(c.done)
	err := c.watcher.Close()
	c.wg.Wait()
	return err
}

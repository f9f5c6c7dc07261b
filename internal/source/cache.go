package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/sazfar/finrep/internal/model"
)

// fileStamp identifies one version of the workbook file.
type fileStamp struct {
	modTime time.Time
	size    int64
}

// Cache memoizes the loaded dataset keyed by the workbook's identity
// (path, modification time, size), so repeated report requests do not
// re-read the file. Only the raw load is memoized; filtering, aggregation
// and the rollforward are recomputed on every request. Invalidation is
// automatic when the file changes, and explicit via Invalidate.
type Cache struct {
	src   *SQLiteSource
	data  *model.Dataset
	stamp fileStamp
	mu    sync.Mutex
}

// NewCache wraps a SQLite workbook source with memoization.
func NewCache(src *SQLiteSource) *Cache {
	return &Cache{src: src}
}

// Load returns the cached dataset if the workbook file is unchanged,
// reading it otherwise.
func (c *Cache) Load(ctx context.Context) (*model.Dataset, error) {
	info, err := os.Stat(c.src.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to stat workbook: %w", err)
	}
	current := fileStamp{modTime: info.ModTime(), size: info.Size()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data != nil && c.stamp == current {
		return c.data, nil
	}

	if c.data != nil {
		slog.Info("workbook changed on disk, reloading", "path", c.src.Path())
	}

	data, err := c.src.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.data = data
	c.stamp = current
	return data, nil
}

// Invalidate drops the cached dataset; the next Load re-reads the file.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
}

package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hakseup/topik-api/internal/domain"
)

// Loader provides vocabulary items for a level.
type Loader interface {
	// Level returns every valid item in the given level, tagged with the
	// level number. A level that cannot be loaded yields an empty slice.
	Level(level int) []domain.Item

	// Levels lists the level numbers this loader serves, ascending.
	Levels() []int
}

// FileLoader reads level files named topik<level>.json from a directory.
// Each file holds a JSON array of items. Load failures are logged and
// surface as empty levels.
type FileLoader struct {
	dir    string
	levels []int
	logger *slog.Logger
}

// Verify FileLoader implements Loader.
var _ Loader = (*FileLoader)(nil)

// NewFileLoader creates a FileLoader serving the given levels out of dir.
// Panics if logger is nil, as this represents a bug in application setup.
func NewFileLoader(dir string, levels []int, logger *slog.Logger) *FileLoader {
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}

	sorted := make([]int, len(levels))
	copy(sorted, levels)
	sort.Ints(sorted)

	return &FileLoader{
		dir:    dir,
		levels: sorted,
		logger: logger.With(slog.String("component", "content_loader")),
	}
}

// Levels implements Loader.Levels.
func (l *FileLoader) Levels() []int {
	out := make([]int, len(l.levels))
	copy(out, l.levels)
	return out
}

// Level implements Loader.Level. It reads and parses the level file on
// every call; wrap with NewCachedLoader when the caller is hot.
func (l *FileLoader) Level(level int) []domain.Item {
	path := filepath.Join(l.dir, fmt.Sprintf("topik%d.json", level))
	log := l.logger.With(slog.Int("level", level), slog.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read level file", slog.String("error", err.Error()))
		return []domain.Item{}
	}

	var items []domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("failed to parse level file", slog.String("error", err.Error()))
		return []domain.Item{}
	}

	valid := make([]domain.Item, 0, len(items))
	for i := range items {
		items[i].Level = level
		if err := items[i].Validate(); err != nil {
			log.Warn("skipping invalid item",
				slog.Int("index", i),
				slog.String("key", items[i].Key),
				slog.String("error", err.Error()))
			continue
		}
		valid = append(valid, items[i])
	}

	log.Debug("level loaded", slog.Int("item_count", len(valid)))
	return valid
}

// CachedLoader memoizes another Loader per level. Cached slices are
// shared between callers and must be treated as read-only.
type CachedLoader struct {
	inner Loader

	mu    sync.RWMutex
	cache map[int][]domain.Item
}

var _ Loader = (*CachedLoader)(nil)

// NewCachedLoader wraps inner with a per-level cache.
// Panics if inner is nil, as this represents a bug in application setup.
func NewCachedLoader(inner Loader) *CachedLoader {
	if inner == nil {
		panic("inner loader cannot be nil") // ALLOW-PANIC
	}
	return &CachedLoader{
		inner: inner,
		cache: make(map[int][]domain.Item),
	}
}

// Levels implements Loader.Levels.
func (c *CachedLoader) Levels() []int {
	return c.inner.Levels()
}

// Level implements Loader.Level.
func (c *CachedLoader) Level(level int) []domain.Item {
	c.mu.RLock()
	items, ok := c.cache[level]
	c.mu.RUnlock()
	if ok {
		return items
	}

	loaded := c.inner.Level(level)

	c.mu.Lock()
	// Another goroutine may have loaded the level in the meantime; keep
	// the first result so callers always see a single shared slice.
	if existing, ok := c.cache[level]; ok {
		loaded = existing
	} else {
		c.cache[level] = loaded
	}
	c.mu.Unlock()

	return loaded
}

// ForLevels concatenates the items of several levels in the order given.
func ForLevels(loader Loader, levels []int) []domain.Item {
	var out []domain.Item
	for _, level := range levels {
		out = append(out, loader.Level(level)...)
	}
	return out
}

package episodes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"stardate/internal/fileutil"
	"stardate/internal/logging"
	"stardate/internal/stardate"
)

// Entry is one cached title.
type Entry struct {
	Episode int    `json:"episode"`
	Title   string `json:"title"`
}

// Snapshot is the on-disk form of the title cache.
type Snapshot struct {
	SourceURL string    `json:"source_url"`
	FetchedAt time.Time `json:"fetched_at"`
	Entries   []Entry   `json:"entries"`
}

// Titles converts the snapshot back into a title mapping.
func (s Snapshot) Titles() stardate.Titles {
	titles := make(stardate.Titles, len(s.Entries))
	for _, entry := range s.Entries {
		titles[entry.Episode] = entry.Title
	}
	return titles
}

// Cache persists the last scraped title mapping. An empty path disables it.
type Cache struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewCache creates a cache backed by path.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cache{path: path, logger: logging.NewComponentLogger(logger, "titlecache")}
}

// Path returns the backing file.
func (c *Cache) Path() string {
	return c.path
}

// Load returns the cached snapshot for sourceURL. A missing file, a snapshot
// for a different source, or an unreadable file all report found == false;
// only the last is logged.
func (c *Cache) Load(sourceURL string) (Snapshot, bool) {
	if c == nil || c.path == "" {
		return Snapshot{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.warnUnreadable(err)
		}
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.warnUnreadable(fmt.Errorf("parse cache file: %w", err))
		return Snapshot{}, false
	}
	if snap.SourceURL != sourceURL || len(snap.Entries) == 0 {
		return Snapshot{}, false
	}
	c.logger.Debug("loaded episode title cache",
		logging.Int("entry_count", len(snap.Entries)),
		logging.String("path", c.path))
	return snap, true
}

// Store replaces the cached snapshot for sourceURL.
func (c *Cache) Store(sourceURL string, titles stardate.Titles, fetchedAt time.Time) error {
	if c == nil || c.path == "" {
		return nil
	}
	snap := Snapshot{SourceURL: sourceURL, FetchedAt: fetchedAt.UTC()}
	for episode, title := range titles {
		snap.Entries = append(snap.Entries, Entry{Episode: episode, Title: title})
	}
	sort.Slice(snap.Entries, func(i, j int) bool {
		return snap.Entries[i].Episode < snap.Entries[j].Episode
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.save(snap); err != nil {
		return fmt.Errorf("persist title cache: %w", err)
	}
	c.logger.Debug("stored episode title cache",
		logging.Int("entry_count", len(snap.Entries)),
		logging.String("path", c.path))
	return nil
}

// Clear removes the cache file.
func (c *Cache) Clear() error {
	if c == nil || c.path == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove title cache: %w", err)
	}
	return nil
}

func (c *Cache) save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	return fileutil.WriteFileAtomic(c.path, data, 0o644)
}

func (c *Cache) warnUnreadable(err error) {
	logging.WarnWithContext(c.logger, "failed to load episode title cache", "titlecache_load_failed",
		logging.Error(err),
		logging.String("path", c.path),
		logging.String(logging.FieldErrorHint, "delete the file or run with --refresh-titles"),
		logging.String(logging.FieldImpact, "titles will be fetched from the network"))
}

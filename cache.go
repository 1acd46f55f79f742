package stocklens

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Timestamp is the layout used for human-readable record timestamps.
const Timestamp = "2006-01-02 15:04:05"

// FileCache is a keyed JSON cache backed by a single file. Each entry
// remembers the day it was written, so callers can choose between
// day-scoped freshness (GetToday) and indefinite retention (Get).
//
// Loads are forgiving: a missing or corrupt file reads as empty, so a bad
// cache can only ever cost a refetch. Writes go through a temp file rename.
type FileCache struct {
	path string
}

// NewFileCache returns a cache stored at dir/name.
func NewFileCache(dir, name string) *FileCache {
	return &FileCache{path: filepath.Join(dir, name)}
}

type cacheEntry struct {
	Data       json.RawMessage `json:"data"`
	CachedDate string          `json:"cached_date"`
	CachedAt   string          `json:"cached_at"`
}

func (c *FileCache) load() map[string]cacheEntry {
	entries := make(map[string]cacheEntry)
	data, err := os.ReadFile(c.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("warning: discarding corrupt cache %s: %v", c.path, err)
		return make(map[string]cacheEntry)
	}
	return entries
}

func (c *FileCache) store(entries map[string]cacheEntry) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("cannot create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode cache: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("cannot write cache: %w", err)
	}
	return os.Rename(tmp, c.path)
}

// Get decodes the entry for key into v, regardless of age. It returns false
// when the key is absent or its payload does not decode.
func (c *FileCache) Get(key string, v any) bool {
	e, ok := c.load()[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		log.Printf("warning: discarding unreadable cache entry %q in %s: %v", key, c.path, err)
		return false
	}
	return true
}

// GetToday behaves like Get but only accepts entries written on the current
// calendar day. Day-scoped data such as upcoming earnings dates uses this so
// stale entries roll over at midnight.
func (c *FileCache) GetToday(key string, v any) bool {
	e, ok := c.load()[key]
	if !ok || e.CachedDate != time.Now().Format(DateFormat) {
		return false
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return false
	}
	return true
}

// Put stores v under key, stamped with the current date and time.
func (c *FileCache) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode cache entry %q: %w", key, err)
	}
	entries := c.load()
	now := time.Now()
	entries[key] = cacheEntry{
		Data:       data,
		CachedDate: now.Format(DateFormat),
		CachedAt:   now.Format(Timestamp),
	}
	return c.store(entries)
}

// Invalidate removes the entry for key. Removing an absent key is not an
// error.
func (c *FileCache) Invalidate(key string) error {
	entries := c.load()
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return c.store(entries)
}

// CachedAt returns the write timestamp of the entry for key, or the empty
// string when the key is absent.
func (c *FileCache) CachedAt(key string) string {
	return c.load()[key].CachedAt
}

// DefaultCacheDir returns the directory caches live in when no -cache-dir
// flag or LENS_CACHE_DIR override is given.
func DefaultCacheDir() string {
	if dir := os.Getenv("LENS_CACHE_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".lens-cache"
	}
	return filepath.Join(base, "lens")
}

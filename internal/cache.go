package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/swlin/swlin/internal/types"
)

const cacheFileName = "swlin_cache.gob"

// defaultCacheMaxAge bounds how long an entry stays valid even when the
// file content is unchanged, so config or rule changes age out.
const defaultCacheMaxAge = 24 * time.Hour

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata     fileMetadata
	Issues       []tt.Issue
	CreatedAt    time.Time
	LastAccessed time.Time
}

// cacheFile is the on-disk layout. ConfigHash ties the entries to the
// configuration they were computed under.
type cacheFile struct {
	ConfigHash string
	Entries    map[string]CacheEntry
}

// Cache stores per-file lint results keyed by content hash, persisted as a
// gob file under CacheDir.
type Cache struct {
	CacheDir   string
	entries    map[string]CacheEntry
	configHash string
	mutex      sync.RWMutex
	maxAge     time.Duration
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		maxAge:   defaultCacheMaxAge,
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var stored cacheFile
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	c.configHash = stored.ConfigHash
	if stored.Entries != nil {
		c.entries = stored.Entries
	}
	return nil
}

// SetConfigHash binds the cache to a configuration fingerprint. Entries
// computed under a different configuration are discarded.
func (c *Cache) SetConfigHash(hash string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.configHash != hash {
		c.entries = make(map[string]CacheEntry)
		c.configHash = hash
	}
}

// Save persists the cache to disk.
func (c *Cache) Save() error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(cacheFile{ConfigHash: c.configHash, Entries: c.entries}); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

// Set records the issues for a file. src is the content the issues were
// computed from, so the entry invalidates when the file changes.
func (c *Cache) Set(filename string, src []byte, issues []tt.Issue) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[filename] = CacheEntry{
		Metadata:     fileMetadata{Hash: contentHash(src), LastModified: now},
		Issues:       issues,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

// Get returns the cached issues for filename when the entry is still valid
// against the file's current content.
func (c *Cache) Get(filename string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(filename, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry

	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(filename string, entry CacheEntry) bool {
	// too old
	if time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return true
	}
	return contentHash(src) != entry.Metadata.Hash
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
}

func contentHash(src []byte) string {
	return fmt.Sprintf("%x", md5.Sum(src))
}

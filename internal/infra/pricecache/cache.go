package pricecache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
)

// Cache is a price cache guarded by a single mutex.
// When a path is configured, every mutation rewrites the file while the lock is held,
// so the file always reflects a state the cache actually had.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	path    string
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Cache)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// Stats summarizes the cache content.
type Stats struct {
	Total   int
	Valid   int
	Expired int
}

var _ ports.PriceCache = (*Cache)(nil)

// NewMemory returns a cache without persistence.
func NewMemory(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		now:     time.Now,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open returns a cache persisted at path. A missing file yields an empty cache;
// an unreadable or malformed file is a KindCorruptState error.
func Open(path string, opts ...Option) (*Cache, error) {
	c := NewMemory(opts...)
	c.path = filepath.Clean(path)

	b, err := os.ReadFile(c.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		dir := filepath.Dir(c.path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.OpError{
				Op:   "pricecache.mkdir",
				Kind: domain.KindExecution,
				Path: dir,
				Err:  err,
			}
		}
		c.logger.Debug("pricecache.new", "path", c.path)
		return c, nil
	case err != nil:
		return nil, &domain.OpError{
			Op:   "pricecache.read",
			Kind: domain.KindExecution,
			Path: c.path,
			Err:  err,
		}
	}

	entries, err := decode(b)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "pricecache.load",
			Kind: domain.KindCorruptState,
			Path: c.path,
			Err:  fmt.Errorf("%w: %v", domain.ErrCorruptState, err),
		}
	}
	c.entries = entries
	c.logger.Info("pricecache.loaded", "path", c.path, "entries", len(entries))
	return c, nil
}

// Path is the backing file, or "" for a memory-only cache.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached price when present and not expired.
// It never mutates the cache.
func (c *Cache) Get(from, to string, class domain.TravelClass) (int, bool) {
	key := Key(from, to, class)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.Expired(c.now()) {
		return 0, false
	}
	return e.PriceCents, true
}

// Set stores a price that expires on the next January 1st, replacing any previous
// entry for the key, and drops other expired entries. The in-memory update always
// succeeds; a non-nil error means only that persisting it failed.
func (c *Cache) Set(from, to string, class domain.TravelClass, cents int) error {
	key := Key(from, to, class)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = newEntry(cents, class, now)
	c.purgeLocked(now)

	return c.saveLocked()
}

// Stats counts total, valid and expired entries.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	s := Stats{Total: len(c.entries)}
	for _, e := range c.entries {
		if e.Expired(now) {
			s.Expired++
		}
	}
	s.Valid = s.Total - s.Expired
	return s
}

// Cleanup removes expired entries and persists if anything was removed.
func (c *Cache) Cleanup() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.purgeLocked(c.now())
	if removed == 0 {
		return 0, nil
	}
	return removed, c.saveLocked()
}

func (c *Cache) purgeLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if e.Expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) saveLocked() error {
	if c.path == "" {
		return nil
	}

	b, err := encode(c.entries)
	if err != nil {
		return &domain.OpError{
			Op:   "pricecache.marshal",
			Kind: domain.KindExecution,
			Path: c.path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "pricecache.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "pricecache.rename",
			Kind: domain.KindExecution,
			Path: c.path,
			Err:  err,
		}
	}

	c.logger.Debug("pricecache.saved", "path", c.path, "entries", len(c.entries))
	return nil
}

// encode writes the map as indented JSON; encoding/json sorts map keys.
func encode(entries map[string]Entry) ([]byte, error) {
	out := make(map[string]fileEntry, len(entries))
	for k, e := range entries {
		out[k] = toFile(e)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// decode parses a cache file. An empty (or whitespace-only) file is an empty cache.
func decode(b []byte) (map[string]Entry, error) {
	entries := make(map[string]Entry)
	if len(bytes.TrimSpace(b)) == 0 {
		return entries, nil
	}

	var raw map[string]fileEntry
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	for k, fe := range raw {
		e, err := fromFile(k, fe)
		if err != nil {
			return nil, err
		}
		entries[k] = e
	}
	return entries, nil
}

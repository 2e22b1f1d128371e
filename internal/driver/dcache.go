package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированные диаграммы реализации по Digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached generator run.
type DiskPayload struct {
	Schema             uint16 `msgpack:"schema"`
	ImplementationPath string `msgpack:"impl"`
	Generator          string `msgpack:"gen"`
	Text               string `msgpack:"text"`
	CreatedUnix        int64  `msgpack:"created"`
}

// DefaultCacheDir is <user cache home>/<app> as resolved by xdg
// ($XDG_CACHE_HOME, ~/.cache, ~/Library/Caches, %LOCALAPPDATA%).
func DefaultCacheDir(app string) string {
	return filepath.Join(xdg.CacheHome, app)
}

// OpenDiskCache opens (and creates) a cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		dir = DefaultCacheDir("arcucheck")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном месте
	return filepath.Join(c.dir, "diagrams", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload. The write is atomic.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	stored := *payload
	stored.Schema = diskCacheSchemaVersion
	if stored.CreatedUnix == 0 {
		stored.CreatedUnix = time.Now().Unix()
	}
	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Missing, corrupt and outdated entries are misses;
// the latter two are removed.
func (c *DiskCache) Get(key Digest) (*DiskPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	p := c.pathFor(key)
	data, err := os.ReadFile(p)
	c.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var out DiskPayload
	if err := msgpack.Unmarshal(data, &out); err != nil || out.Schema != diskCacheSchemaVersion {
		c.mu.Lock()
		_ = os.Remove(p)
		c.mu.Unlock()
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every cached entry, keeping the root.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := filepath.Join(c.dir, "diagrams")
	old := entries + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(entries, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/spotivi/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketPages = []byte("pages")

// firstPageKey stands in for the empty continuation of a first-page request
const firstPageKey = "first"

// entry is the on-disk envelope of a cached page
type entry struct {
	SavedAt time.Time       `json:"saved_at"`
	Page    json.RawMessage `json:"page"`
}

// PageStore implements domain.PageStore using BoltDB.
type PageStore struct {
	db     *bolt.DB
	now    func() time.Time
	logger *slog.Logger

	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewPageStore opens the cache under baseCacheDir. Each namespace (the API
// account the pages belong to) gets its own database. An empty baseCacheDir
// keeps everything in memory.
func NewPageStore(baseCacheDir, namespace string) (*PageStore, error) {
	s := &PageStore{cache: make(map[string][]byte), now: time.Now, logger: slog.Default()}
	if baseCacheDir == "" {
		return s, nil
	}

	dir := baseCacheDir
	if namespace != "" {
		dir = filepath.Join(baseCacheDir, hashNamespace(namespace))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "spotivi.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

func hashNamespace(namespace string) string {
	normalized := strings.TrimRight(strings.ToLower(namespace), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *PageStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func resourcePrefix(id domain.ResourceID) string {
	return id.String() + "|"
}

func pageKey(id domain.ResourceID, continuation string) string {
	if continuation == "" {
		continuation = firstPageKey
	}
	return resourcePrefix(id) + continuation
}

// GetPage decodes a cached page into dest
func (s *PageStore) GetPage(id domain.ResourceID, continuation string, maxAge time.Duration, dest any) bool {
	data := s.load(pageKey(id, continuation))
	if data == nil {
		return false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}
	if maxAge > 0 && s.now().Sub(e.SavedAt) > maxAge {
		return false
	}
	return json.Unmarshal(e.Page, dest) == nil
}

// SavePage stores a page
func (s *PageStore) SavePage(id domain.ResourceID, continuation string, page any) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry{SavedAt: s.now(), Page: raw})
	if err != nil {
		return err
	}

	key := pageKey(id, continuation)

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPages).Put([]byte(key), data)
	})
}

// InvalidateResource drops every cached page of a resource
func (s *PageStore) InvalidateResource(id domain.ResourceID) error {
	return s.deletePrefix(resourcePrefix(id))
}

// InvalidateAll wipes the cache
func (s *PageStore) InvalidateAll() error {
	return s.deletePrefix("")
}

func (s *PageStore) load(key string) []byte {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketPages).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("page cache read failed", "key", key, "error", err)
		return nil
	}

	if data == nil {
		return nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data
}

func (s *PageStore) deletePrefix(prefix string) error {
	s.mu.Lock()
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		c := b.Cursor()
		// Collect first: deleting while iterating skips keys
		var keys [][]byte
		for k, _ := c.Seek([]byte(prefix)); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate %q: %w", prefix, err)
	}
	return nil
}

// Package session persists user preferences and recently viewed resources
// across runs. Catalog data is never written here.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/holonet/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPrefs   = []byte("prefs")
	bucketHistory = []byte("history")
)

const (
	keyLocale  = "locale"
	keyVisits  = "visits"
	maxHistory = 20
)

// Visit is one opened detail page.
type Visit struct {
	Kind      domain.Kind `json:"kind"`
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	VisitedAt time.Time   `json:"visited_at"`
}

// Ref returns the visited resource's ref
func (v Visit) Ref() domain.Ref { return domain.Ref{Kind: v.Kind, ID: v.ID} }

// Store is a small bolt-backed key/value store with a memory front.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
	now   func() time.Time
}

// Open opens (creating if needed) the session database at path.
// An empty path gives a memory-only store.
func Open(path string) (*Store, error) {
	s := &Store{cache: make(map[string][]byte), now: time.Now}
	if path == "" {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPrefs, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

// Reset deletes the session database file at path.
func Reset(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session db: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = slices.Clone(v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}

// === Preferences ===

// Locale returns the saved locale tag, if any.
func (s *Store) Locale() (string, bool) {
	var tag string
	ok := s.get(bucketPrefs, keyLocale, &tag)
	return tag, ok && tag != ""
}

func (s *Store) SaveLocale(tag string) error {
	return s.set(bucketPrefs, keyLocale, strings.TrimSpace(tag))
}

// === History ===

// History returns recent visits, newest first.
func (s *Store) History() []Visit {
	var visits []Visit
	s.get(bucketHistory, keyVisits, &visits)
	return visits
}

// RecordVisit moves ref to the front of the history, keeping at most
// maxHistory entries.
func (s *Store) RecordVisit(ref domain.Ref, name string) error {
	if ref.ID <= 0 {
		return domain.ErrInvalidID
	}
	visits := s.History()
	visits = slices.DeleteFunc(visits, func(v Visit) bool { return v.Ref() == ref })
	visits = slices.Insert(visits, 0, Visit{Kind: ref.Kind, ID: ref.ID, Name: name, VisitedAt: s.now()})
	if len(visits) > maxHistory {
		visits = visits[:maxHistory]
	}
	return s.set(bucketHistory, keyVisits, visits)
}

func (s *Store) ClearHistory() error {
	return s.delete(bucketHistory, keyVisits)
}

// Package storage persists every item the client displayed in a bbolt file.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pders01/hnterm/internal/item"
)

var (
	itemsBucket = []byte("items")
	metaBucket  = []byte("metadata")

	maxItemIDKey = []byte("max_item_id")
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{itemsBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func itemKey(id int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}

// SaveItems upserts items, keeping the first time each one was seen.
func (s *Store) SaveItems(items []item.Item) ([]SeenItem, error) {
	now := s.now().UTC()
	saved := make([]SeenItem, 0, len(items))

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(itemsBucket)
		for _, it := range items {
			seen := seenFromItem(it, now)
			if prev := b.Get(itemKey(it.ID)); prev != nil {
				var old SeenItem
				if err := json.Unmarshal(prev, &old); err == nil && !old.FirstSeen.IsZero() {
					seen.FirstSeen = old.FirstSeen
				}
			}
			data, err := json.Marshal(seen)
			if err != nil {
				return err
			}
			if err := b.Put(itemKey(it.ID), data); err != nil {
				return err
			}
			saved = append(saved, seen)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Store) GetItem(id int) (*SeenItem, error) {
	var seen SeenItem
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(itemsBucket).Get(itemKey(id))
		if data == nil {
			return fmt.Errorf("item %d: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &seen)
	})
	if err != nil {
		return nil, err
	}
	return &seen, nil
}

// GetItems returns the seen items among ids, in the order of ids.
func (s *Store) GetItems(ids []int) ([]*SeenItem, error) {
	var items []*SeenItem
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(itemsBucket)
		for _, id := range ids {
			data := b.Get(itemKey(id))
			if data == nil {
				continue
			}
			var seen SeenItem
			if err := json.Unmarshal(data, &seen); err != nil {
				continue
			}
			items = append(items, &seen)
		}
		return nil
	})
	return items, err
}

// AllItems returns every seen item, most recently seen first.
func (s *Store) AllItems(limit int) ([]*SeenItem, error) {
	var items []*SeenItem
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(itemsBucket).ForEach(func(_ []byte, v []byte) error {
			var seen SeenItem
			if err := json.Unmarshal(v, &seen); err != nil {
				return nil
			}
			items = append(items, &seen)
			return nil
		})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].LastSeen.Equal(items[j].LastSeen) {
			return items[i].LastSeen.After(items[j].LastSeen)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, err
}

func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(itemsBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// SaveMaxItemID records the latest item id reported by the API.
func (s *Store) SaveMaxItemID(id int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(maxItemIDKey, itemKey(id))
	})
}

// MaxItemID returns the id saved by SaveMaxItemID, or 0.
func (s *Store) MaxItemID() (int, error) {
	var id int
	err := s.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(metaBucket).Get(maxItemIDKey); len(data) == 8 {
			id = int(binary.BigEndian.Uint64(data))
		}
		return nil
	})
	return id, err
}

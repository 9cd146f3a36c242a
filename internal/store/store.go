// Package store persists the small per-sketch lists a MicroSim keeps between
// runs, such as the saved cards of the misconception catalog.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrClosed is returned by lists whose database has been closed.
var ErrClosed = errors.New("store is closed")

const bucketSaved = "saved"

var initDB = map[string]func(tx *bolt.Tx) error{
	"initialize saved list table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSaved))
		return err
	},
}

// SavedList is an ordered list of item identifiers. Values round-trip as a
// JSON array of strings.
type SavedList interface {
	Load() ([]string, error)
	Save(ids []string) error
}

// DB is a bbolt-backed store.
type DB struct {
	db *bolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Close releases the database file.
func (d *DB) Close() error { return d.db.Close() }

// List returns the saved list stored under name.
func (d *DB) List(name string) SavedList {
	return &boltList{db: d.db, key: []byte(name)}
}

type boltList struct {
	db  *bolt.DB
	key []byte
}

func (l *boltList) Load() ([]string, error) {
	var ids []string
	err := l.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSaved)).Get(l.key)
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &ids)
	})
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.key, err)
	}
	return ids, nil
}

func (l *boltList) Save(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	err = l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSaved)).Put(l.key, data)
	})
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return err
}

// Memory is an in-process SavedList, used when no data directory is
// configured.
type Memory struct {
	mu  sync.Mutex
	raw []byte
}

func (m *Memory) Load() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raw == nil {
		return nil, nil
	}
	var ids []string
	err := json.Unmarshal(m.raw, &ids)
	return ids, err
}

func (m *Memory) Save(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.raw = data
	m.mu.Unlock()
	return nil
}

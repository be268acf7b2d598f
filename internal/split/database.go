package split

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
)

const peopleBucket = "people"

// RosterDB persists the household roster between runs so people don't have to
// be re-entered for every receipt. Receipts, items and assignments are
// deliberately not stored; only people survive a restart.
type RosterDB interface {
	// AddPerson stores a person. Adding an existing name is a no-op.
	AddPerson(name string) error

	// RemovePerson removes a person from the roster
	RemovePerson(name string) error

	// ListPeople returns the roster in the order people were first added
	ListPeople() ([]string, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the RosterDB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(peopleBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// AddPerson stores a person keyed by name. The value is the add timestamp,
// which ListPeople sorts on to reconstruct insertion order.
func (b *BoltDB) AddPerson(name string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(peopleBucket))
		if bucket.Get([]byte(name)) != nil {
			return nil
		}
		return bucket.Put([]byte(name), []byte(strconv.FormatInt(time.Now().UnixNano(), 10)))
	})
}

// RemovePerson removes a person from the roster
func (b *BoltDB) RemovePerson(name string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(peopleBucket)).Delete([]byte(name))
	})
}

// ListPeople returns the roster in the order people were first added
func (b *BoltDB) ListPeople() ([]string, error) {
	type entry struct {
		name    string
		addedAt int64
	}

	entries := make([]entry, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(peopleBucket))
		return bucket.ForEach(func(k, v []byte) error {
			addedAt, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return fmt.Errorf("parsing roster entry %q: %w", k, err)
			}
			entries = append(entries, entry{name: string(k), addedAt: addedAt})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].addedAt < entries[j].addedAt })

	people := make([]string, len(entries))
	for i, e := range entries {
		people[i] = e.name
	}
	return people, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}

package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/wbrown/janus-grimoire/grimoire"
	"github.com/wbrown/janus-grimoire/grimoire/sexp"
)

// BadgerStore implements Store using BadgerDB. Values are stored as
// canonical text and re-parsed on read; the round-trip guarantee of
// the sexp codec makes the store lossless.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a new BadgerDB-backed store at the given path
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs for now

	// Canonical encodings are small; keep them in the LSM tree
	opts.ValueThreshold = 1 << 10

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// Put persists a datum under the SHA-256 of its canonical text
func (s *BadgerStore) Put(d *grimoire.Datum) (ID, error) {
	canonical := []byte(sexp.Print(d))
	id := IDOf(canonical)

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(id[:], canonical)
	})
	if err != nil {
		return ID{}, fmt.Errorf("failed to store datum: %w", err)
	}
	return id, nil
}

// Get retrieves a datum by ID
func (s *BadgerStore) Get(id ID) (*grimoire.Datum, error) {
	var result *grimoire.Datum

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(id[:])
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			d, err := sexp.Parse(string(val))
			if err != nil {
				return fmt.Errorf("corrupt datum %s: %w", id, err)
			}
			result = d
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, nil
	}

	return result, err
}

// Has reports whether a datum with the given ID is stored
func (s *BadgerStore) Has(id ID) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(id[:])
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Walk visits every stored datum in key order
func (s *BadgerStore) Walk(fn func(id ID, d *grimoire.Datum) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			var id ID
			if len(item.Key()) != len(id) {
				continue // not a datum key
			}
			copy(id[:], item.Key())

			err := item.Value(func(val []byte) error {
				d, err := sexp.Parse(string(val))
				if err != nil {
					return fmt.Errorf("corrupt datum %s: %w", id, err)
				}
				return fn(id, d)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

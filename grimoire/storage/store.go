package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/wbrown/janus-grimoire/grimoire"
)

// ID identifies a stored datum by the SHA-256 of its canonical text.
// Because printing is canonical, structurally equal datums always map
// to the same ID.
type ID [sha256.Size]byte

// IDOf computes the ID for a canonical text encoding.
func IDOf(canonical []byte) ID {
	return sha256.Sum256(canonical)
}

// String returns the hex form of the ID.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// ParseID parses the hex form of an ID.
func ParseID(s string) (ID, error) {
	var id ID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("invalid datum ID: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("invalid datum ID: expected %d bytes, got %d", len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Store is the interface for persistent datum storage
type Store interface {
	// Put persists a datum and returns its content-addressed ID.
	// Storing the same datum twice is a no-op.
	Put(d *grimoire.Datum) (ID, error)

	// Get retrieves a datum by ID, or (nil, nil) if absent.
	Get(id ID) (*grimoire.Datum, error)

	// Has reports whether a datum with the given ID is stored.
	Has(id ID) (bool, error)

	// Walk visits every stored datum. Returning an error from the
	// callback stops the walk.
	Walk(fn func(id ID, d *grimoire.Datum) error) error

	// Lifecycle
	Close() error
}

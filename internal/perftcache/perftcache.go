// Package perftcache persists verified perft node counts so repeated suite
// runs skip recomputation. Entries are keyed by (FEN, depth).
package perftcache

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Cache wraps BadgerDB for persistent perft-count storage.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) a cache at the given directory.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func key(fen string, depth int) []byte {
	return []byte(fmt.Sprintf("perft|%s|%d", fen, depth))
}

// Get returns the stored node count for (fen, depth) and whether one exists.
func (c *Cache) Get(fen string, depth int) (uint64, bool, error) {
	var nodes uint64
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(fen, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt perft entry: %d bytes", len(val))
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})

	return nodes, found, err
}

// Put stores the node count for (fen, depth).
func (c *Cache) Put(fen string, depth int, nodes uint64) error {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, nodes)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(fen, depth), val)
	})
}

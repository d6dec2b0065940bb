// Locus - Geographic Business Linking and Similarity Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/locus

package store

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

type kv struct {
	key   []byte
	value []byte
}

// positionKey zero pads i so lexical key order matches position order.
func positionKey(prefix string, i int) []byte {
	return []byte(fmt.Sprintf("%s%010d", prefix, i))
}

// writeBatches commits entries in transactions of at most batchSize sets,
// waiting on the limiter before each commit.
func (s *Store) writeBatches(ctx context.Context, entries []kv) error {
	for start := 0; start < len(entries); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		end := start + s.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[start:end]

		err := s.db.Update(func(txn *badger.Txn) error {
			for _, e := range batch {
				if err := txn.SetEntry(badger.NewEntry(e.key, e.value)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("commit batch at %d: %w", start, err)
		}
	}
	return nil
}

func (s *Store) putJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data))
	})
}

// scan calls fn with the suffix and value of every key under prefix,
// in key order.
func (s *Store) scan(ctx context.Context, prefix string, fn func(suffix string, val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			suffix := string(item.Key()[len(p):])
			err := item.Value(func(val []byte) error {
				return fn(suffix, val)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// KV is a badger database split into named buckets. A record is stored
// under the raw key "<bucket>/<key>".
type KV struct {
	db *badger.DB
}

// OpenKV opens or creates the badger directory at dir.
func OpenKV(dir string, log zerolog.Logger) (*KV, error) {
	if dir == "" {
		return nil, errors.New("badger directory is required")
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(badgerLogger{log}))
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}
	return &KV{db: db}, nil
}

// Bucket returns a handle on one namespace of the store.
func (s *KV) Bucket(name string) Bucket {
	return Bucket{db: s.db, prefix: []byte(name + "/")}
}

func (s *KV) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Bucket reads and writes the keys of one namespace.
type Bucket struct {
	db     *badger.DB
	prefix []byte
}

func (b Bucket) key(k string) ([]byte, error) {
	if k == "" {
		return nil, errors.New("empty key")
	}
	return append(append([]byte{}, b.prefix...), k...), nil
}

// Put stores value at k, replacing any previous value.
func (b Bucket) Put(k string, value []byte) error {
	key, err := b.key(k)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error { return txn.Set(key, value) })
}

// Get returns the value at k, or ErrNotFound.
func (b Bucket) Get(k string) ([]byte, error) {
	key, err := b.key(k)
	if err != nil {
		return nil, err
	}
	var out []byte
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

// Each calls fn for every key of the bucket in key order. The value is only
// valid during the call.
func (b Bucket) Each(fn func(k string, value []byte) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k := string(item.Key()[len(b.prefix):])
			if err := item.Value(func(v []byte) error { return fn(k, v) }); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteWhere removes, in one transaction, every entry drop accepts and
// returns how many were removed.
func (b Bucket) DeleteWhere(drop func(k string, value []byte) bool) (int, error) {
	n := 0
	err := b.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.prefix
		it := txn.NewIterator(opts)
		var doomed [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k := item.KeyCopy(nil)
			var hit bool
			if err := item.Value(func(v []byte) error {
				hit = drop(string(k[len(b.prefix):]), v)
				return nil
			}); err != nil {
				it.Close()
				return err
			}
			if hit {
				doomed = append(doomed, k)
			}
		}
		it.Close()
		for _, k := range doomed {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		n = len(doomed)
		return nil
	})
	return n, err
}

// badgerLogger routes badger's internal logging to zerolog. Badger is
// chatty at info, so that level is demoted to debug.
type badgerLogger struct{ zerolog.Logger }

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.Error().Msgf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.Warn().Msgf(f, v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.Debug().Msgf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.Trace().Msgf(f, v...) }

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const sessionKeyPrefix = "session:"

// BadgerStore keeps session tokens in an embedded badger database. Entries
// carry a TTL, so expiry needs no sweeper.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens the session database at path. An empty path opens an
// in-memory database, used by tests.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Save(ctx context.Context, token string, identity Identity, ttl time.Duration) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(token), payload).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

func (s *BadgerStore) Lookup(ctx context.Context, token string) (Identity, error) {
	var identity Identity
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &identity)
		})
	})
	if err != nil {
		return Identity{}, err
	}
	return identity, nil
}

func (s *BadgerStore) Delete(ctx context.Context, token string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func sessionKey(token string) []byte {
	return []byte(sessionKeyPrefix + token)
}

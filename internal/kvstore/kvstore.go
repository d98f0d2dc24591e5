// ABOUTME: Badger key-value side store kept outside the main SQLite database.
// ABOUTME: Survives data resets; holds the seed guard, settings mirror and backup metadata.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitnotes/internal/logger"
)

// Store is a small JSON-valued key-value store on badger.
type Store struct {
	db       *badger.DB
	log      *log.Logger
	detached bool
	mu       sync.RWMutex
}

// Open opens or creates the store in dir.
func Open(dir string, l *log.Logger) (*Store, error) {
	l = logger.OrDiscard(l)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create kv directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).
		WithLogger(badgerLogger{l}).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	return &Store{db: db, log: l}, nil
}

// OpenInMemory opens a store that is discarded on Close.
func OpenInMemory(l *log.Logger) (*Store, error) {
	l = logger.OrDiscard(l)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{l}))
	if err != nil {
		return nil, fmt.Errorf("open in-memory kv store: %w", err)
	}
	return &Store{db: db, log: l}, nil
}

// OpenWithFallback opens dir, falling back to a detached in-memory store
// when another process (such as a running MCP server) holds the directory
// lock. Writes to a detached store are lost on Close.
func OpenWithFallback(dir string, l *log.Logger) (*Store, error) {
	s, err := Open(dir, l)
	if err == nil {
		return s, nil
	}
	logger.OrDiscard(l).Warn("kv store unavailable, using detached in-memory store", "dir", dir, "err", err)
	s, memErr := OpenInMemory(l)
	if memErr != nil {
		return nil, errors.Join(err, memErr)
	}
	s.detached = true
	return s, nil
}

// Detached reports whether the store fell back to memory.
func (s *Store) Detached() bool {
	return s.detached
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// get decodes the value at key into v. It reports false if key is absent.
func (s *Store) get(key string, v any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if v == nil {
		return true, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// badgerLogger routes badger's internal logging onto the application logger.
// Badger is chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(f string, v ...interface{})   { b.l.Errorf(trim(f), v...) }
func (b badgerLogger) Warningf(f string, v ...interface{}) { b.l.Warnf(trim(f), v...) }
func (b badgerLogger) Infof(f string, v ...interface{})    { b.l.Debugf(trim(f), v...) }
func (b badgerLogger) Debugf(f string, v ...interface{})   { b.l.Debugf(trim(f), v...) }

func trim(f string) string {
	if n := len(f); n > 0 && f[n-1] == '\n' {
		return f[:n-1]
	}
	return f
}

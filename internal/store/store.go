// Package store persists the profile, plan and ledger documents.
//
// A Storage is a flat string key-value space. The Gateway sits on top of it
// and owns the document keys and their JSON encoding.
package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
)

// Document keys. These are stable across releases.
const (
	KeyProfile = "profile"
	KeyPlan    = "plan"
	KeyLedger  = "ledger"
)

var ErrNotFound = errors.New("document not found")

// Storage is a key-value document store. Get returns ErrNotFound for a key
// that was never set or was cleared.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Driver         string // memory, sqlite, postgres or redis
	Path           string // sqlite file
	DatabaseURL    string // postgres
	RedisAddr      string
	RedisPassword  string
	RedisNamespace string
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case "memory":
		return NewMemory(), nil
	case "", "sqlite":
		return OpenSQLite(ctx, opts.Path)
	case "postgres":
		return openMigratedPostgres(ctx, opts.DatabaseURL)
	case "redis":
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisNamespace)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

func openMigratedPostgres(ctx context.Context, dbURL string) (*Postgres, error) {
	migrations, err := EmbeddedMigrations()
	if err != nil {
		return nil, err
	}
	p, err := OpenPostgres(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	if _, err := p.Migrate(ctx, migrations); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

/* ─── Memory ─────────────────────────────────────────────────────────── */

// Memory keeps documents in a map. Safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	docs map[string]string
}

func NewMemory() *Memory {
	return &Memory{docs: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.docs[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = value
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.docs)
	return nil
}

func (m *Memory) Close() error { return nil }

// Dump returns a copy of every stored document.
func (m *Memory) Dump() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.docs)
}

// Package sessionrepo provides a redis-backed session store. Sessions are
// JSON records under "session:<key>" with a TTL, so a crashed process never
// leaves sessions behind forever even if the cleanup sweep is not running.
// Read-modify-write cycles are serialized with an in-process keyed mutex,
// matching the single-process scheduling model of the service.
package sessionrepo

import (
	"context"
	"time"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/keylock"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store holds the redis client and the per-key write locks shared by all
// units of work.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	locks  *keylock.KeyedMutex
}

// NewStore creates a session store over the given client. ttl bounds how
// long an untouched session survives; every write refreshes it.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		locks:  keylock.NewKeyedMutex(),
	}
}

// NewUnitOfWork creates a unit of work over the store.
func (s *Store) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		store:    s,
		heldKeys: make(map[string]struct{}),
	}
}

// UnitOfWork scopes a run of session-store operations. Writes apply
// immediately; the unit of work contributes the exclusive key holds taken
// by GetForUpdate, released on Commit or Rollback.
type UnitOfWork struct {
	store    *Store
	heldKeys map[string]struct{}
	finished bool
}

// Begin starts the unit of work.
func (u *UnitOfWork) Begin(_ context.Context) error {
	return nil
}

// Commit releases all holds taken during the unit of work.
func (u *UnitOfWork) Commit(_ context.Context) error {
	u.release()
	return nil
}

// Rollback releases all holds taken during the unit of work.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.release()
	return nil
}

// SessionRepository returns the session repository bound to this unit of
// work.
func (u *UnitOfWork) SessionRepository() ports.SessionRepository {
	return &redisSessionRepository{uow: u}
}

func (u *UnitOfWork) release() {
	if u.finished {
		return
	}
	u.finished = true

	for key := range u.heldKeys {
		u.store.locks.Unlock(key)
	}
}

func (u *UnitOfWork) holdKey(key string) {
	if _, held := u.heldKeys[key]; held {
		return
	}
	u.store.locks.Lock(key)
	u.heldKeys[key] = struct{}{}
}

package memory

import (
	"context"

	"parceltrack/internal/core/ports"
)

// UnitOfWork scopes a run of store operations. Writes apply immediately
// under the store's internal lock; what the unit of work adds on top is the
// per-key exclusive holds taken by GetForUpdate, which are released only on
// Commit or Rollback. Rollback after Commit is a no-op.
type UnitOfWork struct {
	store *Store

	heldParcelKeys  map[string]struct{}
	heldSessionKeys map[string]struct{}
	finished        bool
}

// NewUnitOfWork creates a unit of work over the store.
func (s *Store) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		store:           s,
		heldParcelKeys:  make(map[string]struct{}),
		heldSessionKeys: make(map[string]struct{}),
	}
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

// ParcelRepository returns the parcel repository bound to this unit of work.
func (u *UnitOfWork) ParcelRepository() ports.ParcelRepository {
	return &parcelRepository{uow: u}
}

// SessionRepository returns the session repository bound to this unit of
// work.
func (u *UnitOfWork) SessionRepository() ports.SessionRepository {
	return &sessionRepository{uow: u}
}

func (u *UnitOfWork) release() {
	if u.finished {
		return
	}
	u.finished = true

	for key := range u.heldParcelKeys {
		u.store.parcelLocks.Unlock(key)
	}
	for key := range u.heldSessionKeys {
		u.store.sessionLocks.Unlock(key)
	}
}

func (u *UnitOfWork) holdParcelKey(key string) {
	if _, held := u.heldParcelKeys[key]; held {
		return
	}
	u.store.parcelLocks.Lock(key)
	u.heldParcelKeys[key] = struct{}{}
}

func (u *UnitOfWork) holdSessionKey(key string) {
	if _, held := u.heldSessionKeys[key]; held {
		return
	}
	u.store.sessionLocks.Lock(key)
	u.heldSessionKeys[key] = struct{}{}
}

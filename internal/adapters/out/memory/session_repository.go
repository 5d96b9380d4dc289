package memory

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/errs"
)

type sessionRepository struct {
	uow *UnitOfWork
}

func (r *sessionRepository) Add(_ context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored, err := cloneSession(aggregate)
	if err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	key := aggregate.Key().String()
	if _, exists := store.sessions[key]; exists {
		return errs.NewConcurrencyConflictError("sessionKey", key)
	}

	store.sessions[key] = stored
	return nil
}

func (r *sessionRepository) Update(_ context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored, err := cloneSession(aggregate)
	if err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	key := aggregate.Key().String()
	if _, exists := store.sessions[key]; !exists {
		return errs.NewObjectNotFoundError("sessionKey", key)
	}

	store.sessions[key] = stored
	return nil
}

func (r *sessionRepository) Get(_ context.Context, key kernel.SessionKey) (*session.Session, error) {
	store := r.uow.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	return r.getLocked(key)
}

func (r *sessionRepository) GetForUpdate(_ context.Context, key kernel.SessionKey) (*session.Session, error) {
	r.uow.holdSessionKey(key.String())

	store := r.uow.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	return r.getLocked(key)
}

func (r *sessionRepository) Delete(_ context.Context, key kernel.SessionKey) error {
	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, key.String())
	return nil
}

func (r *sessionRepository) GetUpdatedBefore(_ context.Context, cutoff time.Time) ([]*session.Session, error) {
	store := r.uow.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	var stale []*session.Session
	for _, stored := range store.sessions {
		if !stored.UpdatedAt().Before(cutoff) {
			continue
		}
		restored, err := cloneSession(stored)
		if err != nil {
			return nil, err
		}
		stale = append(stale, restored)
	}

	return stale, nil
}

func (r *sessionRepository) getLocked(key kernel.SessionKey) (*session.Session, error) {
	stored, ok := r.uow.store.sessions[key.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sessionKey", key.String())
	}

	return cloneSession(stored)
}

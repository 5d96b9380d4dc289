package commands

import (
	"context"
	"errors"

	"parceltrack/internal/pkg/errs"
)

// PurgeStaleSessionsCommandHandler handles the stale-session sweep. Every
// candidate from the listing is re-read under its write hold and checked
// against the cutoff again, so a session touched between listing and
// deletion survives the sweep.
type PurgeStaleSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewPurgeStaleSessionsCommandHandler creates a handler for the sweep.
func NewPurgeStaleSessionsCommandHandler(uowFactory SessionUoWFactory) PurgeStaleSessionsCommandHandler {
	return PurgeStaleSessionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes every session whose last mutation precedes the cutoff and
// returns how many were removed.
func (h *PurgeStaleSessionsCommandHandler) Handle(ctx context.Context, cmd PurgeStaleSessionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.SessionRepository().GetUpdatedBefore(ctx, cmd.OlderThan())
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, candidate := range stale {
		current, err := uow.SessionRepository().GetForUpdate(ctx, candidate.Key())
		if errors.Is(err, errs.ErrObjectNotFound) {
			// Already ended by its owner, the sweep's goal state.
			continue
		}
		if err != nil {
			return 0, err
		}
		if !current.IsIdleSince(cmd.OlderThan()) {
			continue
		}
		if err = uow.SessionRepository().Delete(ctx, current.Key()); err != nil {
			return 0, err
		}
		purged++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}

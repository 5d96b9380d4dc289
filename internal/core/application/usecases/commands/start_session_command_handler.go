package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/errs"
)

// StartSessionCommandHandler handles opening new scanning sessions.
// Allocates a fresh session key and persists the session in the pending
// state, ready for a device to announce itself.
type StartSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewStartSessionCommandHandler creates a handler for session starts.
func NewStartSessionCommandHandler(uowFactory SessionUoWFactory) StartSessionCommandHandler {
	return StartSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command and returns the created session.
// Key collisions with active sessions trigger regeneration up to
// maxIdentifierAttempts before the conflict surfaces to the caller.
func (h *StartSessionCommandHandler) Handle(ctx context.Context, cmd StartSessionCommand) (*session.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for range maxIdentifierAttempts {
		created, err := h.startOnce(ctx, cmd)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (h *StartSessionCommandHandler) startOnce(ctx context.Context, cmd StartSessionCommand) (*session.Session, error) {
	newSession, err := session.NewSession(
		kernel.GenerateSessionKey(),
		cmd.Employee(),
		cmd.Location(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SessionRepository().Add(ctx, newSession); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newSession, nil
}

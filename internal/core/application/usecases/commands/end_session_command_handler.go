package commands

import (
	"context"
)

// EndSessionCommandHandler handles closing scanning sessions. Ending a
// session that no longer exists succeeds: the caller's goal state is
// already reached.
type EndSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewEndSessionCommandHandler creates a handler for session ends.
func NewEndSessionCommandHandler(uowFactory SessionUoWFactory) EndSessionCommandHandler {
	return EndSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the session from the active set.
func (h *EndSessionCommandHandler) Handle(ctx context.Context, cmd EndSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SessionRepository().Delete(ctx, cmd.SessionKey()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

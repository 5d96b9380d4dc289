package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/session"
)

// JoinSessionCommandHandler handles device announcements against a session.
type JoinSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewJoinSessionCommandHandler creates a handler for device announcements.
func NewJoinSessionCommandHandler(uowFactory SessionUoWFactory) JoinSessionCommandHandler {
	return JoinSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the announcing device on the session and returns the
// updated session.
func (h *JoinSessionCommandHandler) Handle(ctx context.Context, cmd JoinSessionCommand) (*session.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	joined, err := uow.SessionRepository().GetForUpdate(ctx, cmd.SessionKey())
	if err != nil {
		return nil, err
	}

	if err = joined.Join(cmd.DeviceName(), time.Now()); err != nil {
		return nil, err
	}

	if err = uow.SessionRepository().Update(ctx, joined); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return joined, nil
}

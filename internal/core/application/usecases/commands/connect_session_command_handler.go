package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/session"
)

// ConnectSessionCommandHandler handles pairing confirmations. Connecting is
// idempotent: confirming an already connected session succeeds.
type ConnectSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewConnectSessionCommandHandler creates a handler for pairing confirmations.
func NewConnectSessionCommandHandler(uowFactory SessionUoWFactory) ConnectSessionCommandHandler {
	return ConnectSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the session to the connected state and returns it.
func (h *ConnectSessionCommandHandler) Handle(ctx context.Context, cmd ConnectSessionCommand) (*session.Session, error) {
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

	connected, err := uow.SessionRepository().GetForUpdate(ctx, cmd.SessionKey())
	if err != nil {
		return nil, err
	}

	connected.Connect(cmd.DeviceName(), time.Now())

	if err = uow.SessionRepository().Update(ctx, connected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return connected, nil
}

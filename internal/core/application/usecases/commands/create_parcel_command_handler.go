package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// maxIdentifierAttempts bounds the retry loop on identifier collisions.
// The tracking-number space is small enough that collisions happen; the
// store rejects duplicates and the handler regenerates.
const maxIdentifierAttempts = 3

// CreateParcelCommandHandler handles front-desk package registration.
// Allocates a fresh parcel id and tracking number, synthesizes the first
// checkpoint and persists the record. Two calls with identical inputs
// produce two distinct parcels.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel registration.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the created parcel.
// Identifier collisions trigger regeneration up to maxIdentifierAttempts
// before the conflict surfaces to the caller.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for range maxIdentifierAttempts {
		created, err := h.createOnce(ctx, cmd)
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

func (h *CreateParcelCommandHandler) createOnce(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	newParcel, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.GenerateTrackingNumber(),
		cmd.CustomerName(),
		cmd.RecipientName(),
		cmd.Destination(),
		cmd.Details(),
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

	if err = uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newParcel, nil
}

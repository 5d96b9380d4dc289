package queries

import (
	"context"
)

// GetSessionQueryHandler reads a session through the store port.
type GetSessionQueryHandler struct {
	uowFactory SessionUoWFactory
}

// NewGetSessionQueryHandler creates a handler for session lookups.
func NewGetSessionQueryHandler(uowFactory SessionUoWFactory) GetSessionQueryHandler {
	return GetSessionQueryHandler{uowFactory: uowFactory}
}

// Handle executes the lookup. Returns ErrObjectNotFound for unknown keys.
func (h GetSessionQueryHandler) Handle(
	ctx context.Context,
	query GetSessionQuery,
) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GetSessionQueryResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loaded, err := uow.SessionRepository().Get(ctx, query.SessionKey())
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	scans := make([]ScanHistoryResponse, 0, len(loaded.Scans()))
	for _, record := range loaded.Scans() {
		scans = append(scans, ScanHistoryResponse{
			ParcelID:      record.ParcelID,
			CheckpointSeq: record.CheckpointSeq,
			At:            record.At,
		})
	}

	return GetSessionQueryResponse{
		SessionKey: loaded.Key().String(),
		Employee:   loaded.Employee(),
		Location:   loaded.Location(),
		State:      loaded.State().String(),
		DeviceName: loaded.DeviceName(),
		CreatedAt:  loaded.CreatedAt(),
		UpdatedAt:  loaded.UpdatedAt(),
		Scans:      scans,
	}, nil
}

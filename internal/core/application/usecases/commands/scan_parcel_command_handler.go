package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// ScanParcelCommandHandler handles checkpoint scans from paired devices.
// The session must be in the connected state before a scan is accepted; the
// checkpoint append itself runs in a parcel-only transaction so concurrent
// scans of the same parcel serialize, and the session's scan history is
// written best-effort after the parcel commit.
type ScanParcelCommandHandler struct {
	parcelUoWFactory  ParcelUoWFactory
	sessionUoWFactory SessionUoWFactory
	strictTerminal    bool
	logger            *slog.Logger
}

// NewScanParcelCommandHandler creates a handler for checkpoint scans.
// When strictTerminal is set, scans against parcels in a terminal public
// status are rejected instead of appended.
func NewScanParcelCommandHandler(
	parcelUoWFactory ParcelUoWFactory,
	sessionUoWFactory SessionUoWFactory,
	strictTerminal bool,
	logger *slog.Logger,
) ScanParcelCommandHandler {
	return ScanParcelCommandHandler{
		parcelUoWFactory:  parcelUoWFactory,
		sessionUoWFactory: sessionUoWFactory,
		strictTerminal:    strictTerminal,
		logger:            logger.With("component", "scan_parcel_handler"),
	}
}

// Handle authorizes the scanning session, appends the checkpoint to the
// parcel and records the scan in the session history. Returns the updated
// parcel.
func (h *ScanParcelCommandHandler) Handle(ctx context.Context, cmd ScanParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorize(ctx, cmd); err != nil {
		return nil, err
	}

	updated, seq, err := h.appendCheckpoint(ctx, cmd)
	if err != nil {
		return nil, err
	}

	// History is advisory. A failure here must not undo a committed scan.
	if err := h.recordScanHistory(ctx, cmd, seq); err != nil {
		h.logger.Warn("failed to record scan in session history",
			"sessionKey", cmd.SessionKey().String(),
			"parcelId", cmd.ParcelID().String(),
			"error", err)
	}

	return updated, nil
}

func (h *ScanParcelCommandHandler) authorize(ctx context.Context, cmd ScanParcelCommand) error {
	uow := h.sessionUoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	scanSession, err := uow.SessionRepository().Get(ctx, cmd.SessionKey())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewSessionNotConnectedError(cmd.SessionKey().String())
		}
		return err
	}

	if !scanSession.IsAuthorized() {
		return errs.NewSessionNotConnectedError(cmd.SessionKey().String())
	}

	return nil
}

func (h *ScanParcelCommandHandler) appendCheckpoint(
	ctx context.Context,
	cmd ScanParcelCommand,
) (*parcel.Parcel, int, error) {
	uow := h.parcelUoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	scanned, err := uow.ParcelRepository().GetForUpdate(ctx, cmd.ParcelID())
	if err != nil {
		return nil, 0, err
	}

	if h.strictTerminal && scanned.CurrentPublicStatus().IsTerminal() {
		return nil, 0, errs.NewValueIsInvalidErrorWithCause("action",
			errors.New("parcel is in a terminal status"))
	}

	cp, err := scanned.AppendCheckpoint(cmd.Action(), cmd.Location(), cmd.Employee(), cmd.Notes(), time.Now())
	if err != nil {
		return nil, 0, err
	}

	if err = uow.ParcelRepository().Update(ctx, scanned); err != nil {
		return nil, 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return scanned, cp.Seq(), nil
}

func (h *ScanParcelCommandHandler) recordScanHistory(ctx context.Context, cmd ScanParcelCommand, seq int) error {
	uow := h.sessionUoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	scanSession, err := uow.SessionRepository().GetForUpdate(ctx, cmd.SessionKey())
	if err != nil {
		return err
	}

	scanSession.RecordScan(cmd.ParcelID(), seq, time.Now())

	if err = uow.SessionRepository().Update(ctx, scanSession); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

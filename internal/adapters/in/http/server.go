// Package http exposes the tracking service over HTTP/JSON using echo.
// It translates requests into commands and queries and maps the error
// taxonomy onto status codes: validation and unauthorized sessions are 400,
// unknown objects 404, write conflicts 503.
package http

import (
	"context"
	"errors"
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ParcelQueryHandler handles parcel lookups. Satisfied by
// queries.GetParcelQueryHandler; an interface so the server can be tested
// without a database.
type ParcelQueryHandler interface {
	Handle(ctx context.Context, query queries.GetParcelQuery) (queries.GetParcelQueryResponse, error)
}

// SessionQueryHandler handles session lookups.
type SessionQueryHandler interface {
	Handle(ctx context.Context, query queries.GetSessionQuery) (queries.GetSessionQueryResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createParcelHandler   commands.CreateParcelCommandHandler
	scanParcelHandler     commands.ScanParcelCommandHandler
	startSessionHandler   commands.StartSessionCommandHandler
	joinSessionHandler    commands.JoinSessionCommandHandler
	connectSessionHandler commands.ConnectSessionCommandHandler
	endSessionHandler     commands.EndSessionCommandHandler

	getParcelHandler  ParcelQueryHandler
	getSessionHandler SessionQueryHandler

	labelRenderer ports.LabelRenderer
	publicBaseURL string
}

// NewServer creates the HTTP server with its use-case dependencies.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	scanParcelHandler commands.ScanParcelCommandHandler,
	startSessionHandler commands.StartSessionCommandHandler,
	joinSessionHandler commands.JoinSessionCommandHandler,
	connectSessionHandler commands.ConnectSessionCommandHandler,
	endSessionHandler commands.EndSessionCommandHandler,
	getParcelHandler ParcelQueryHandler,
	getSessionHandler SessionQueryHandler,
	labelRenderer ports.LabelRenderer,
	publicBaseURL string,
) *Server {
	return &Server{
		createParcelHandler:   createParcelHandler,
		scanParcelHandler:     scanParcelHandler,
		startSessionHandler:   startSessionHandler,
		joinSessionHandler:    joinSessionHandler,
		connectSessionHandler: connectSessionHandler,
		endSessionHandler:     endSessionHandler,
		getParcelHandler:      getParcelHandler,
		getSessionHandler:     getSessionHandler,
		labelRenderer:         labelRenderer,
		publicBaseURL:         publicBaseURL,
	}
}

// RegisterRoutes wires all routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/api/test", s.Test)

	e.POST("/api/package/create", s.CreatePackage)
	e.POST("/api/package/scan", s.ScanPackage)
	e.GET("/api/package/tracking/:trackingNumber", s.GetPackageByTrackingNumber)
	e.GET("/api/package/:barcode", s.GetPackage)
	e.GET("/api/package/:barcode/barcode.png", s.GetPackageBarcode)
	e.GET("/api/package/:barcode/qr.png", s.GetPackageQR)

	e.POST("/api/session/start", s.StartSession)
	e.POST("/api/session/join", s.JoinSession)
	e.POST("/api/session/connect", s.ConnectSession)
	e.POST("/api/session/end", s.EndSession)
	e.GET("/api/session/:sessionKey", s.GetSession)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// Test handles GET /api/test, the scanner clients' liveness probe.
func (s *Server) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "API is running"})
}

// CreatePackage handles POST /api/package/create.
func (s *Server) CreatePackage(c echo.Context) error {
	var req CreatePackageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	cmd, err := commands.NewCreateParcelCommand(req.CustomerName, req.RecipientName, req.Destination, req.Details)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.createParcelHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, PackageEnvelope{
		Message: "Package created",
		Package: packageFromAggregate(created),
	})
}

// ScanPackage handles POST /api/package/scan.
func (s *Server) ScanPackage(c echo.Context) error {
	var req ScanPackageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	sessionKey, err := kernel.SessionKeyFromString(req.SessionKey)
	if err != nil {
		return s.writeError(c, err)
	}

	parcelID, err := kernel.UUIDFromString(req.Barcode)
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("barcode", err))
	}

	cmd, err := commands.NewScanParcelCommand(
		sessionKey, parcelID, parcel.Action(req.Action), req.Location, req.Employee, req.Notes)
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := s.scanParcelHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, PackageEnvelope{
		Message: "Checkpoint recorded",
		Package: packageFromAggregate(updated),
	})
}

// GetPackage handles GET /api/package/:barcode.
func (s *Server) GetPackage(c echo.Context) error {
	parcelID, err := kernel.UUIDFromString(c.Param("barcode"))
	if err != nil {
		// A malformed barcode cannot name any package.
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "package not found"})
	}

	query, err := queries.NewGetParcelQueryByID(parcelID)
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.getParcelHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, packageFromReadModel(resp))
}

// GetPackageByTrackingNumber handles GET /api/package/tracking/:trackingNumber.
func (s *Server) GetPackageByTrackingNumber(c echo.Context) error {
	trackingNumber, err := kernel.TrackingNumberFromString(c.Param("trackingNumber"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "package not found"})
	}

	query, err := queries.NewGetParcelQueryByTrackingNumber(trackingNumber)
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.getParcelHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, packageFromReadModel(resp))
}

// GetPackageBarcode handles GET /api/package/:barcode/barcode.png.
func (s *Server) GetPackageBarcode(c echo.Context) error {
	resp, err := s.lookupByBarcode(c)
	if err != nil {
		return s.writeError(c, err)
	}

	img, err := s.labelRenderer.RenderBarcode(resp.ID.String())
	if err != nil {
		return s.writeError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", img)
}

// GetPackageQR handles GET /api/package/:barcode/qr.png. The QR encodes the
// public tracking URL so customers land on the tracking-number lookup.
func (s *Server) GetPackageQR(c echo.Context) error {
	resp, err := s.lookupByBarcode(c)
	if err != nil {
		return s.writeError(c, err)
	}

	img, err := s.labelRenderer.RenderQR(s.publicBaseURL + "/api/package/tracking/" + resp.TrackingNumber)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", img)
}

// StartSession handles POST /api/session/start.
func (s *Server) StartSession(c echo.Context) error {
	var req StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	cmd, err := commands.NewStartSessionCommand(req.Employee, req.Location)
	if err != nil {
		return s.writeError(c, err)
	}

	started, err := s.startSessionHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, SessionKeyEnvelope{
		Message:    "Session started",
		SessionKey: started.Key().String(),
	})
}

// JoinSession handles POST /api/session/join.
func (s *Server) JoinSession(c echo.Context) error {
	var req JoinSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	sessionKey, err := kernel.SessionKeyFromString(req.SessionKey)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewJoinSessionCommand(sessionKey, req.DeviceName)
	if err != nil {
		return s.writeError(c, err)
	}

	joined, err := s.joinSessionHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, SessionEnvelope{
		Message: "Device announced",
		Session: sessionFromAggregate(joined),
	})
}

// ConnectSession handles POST /api/session/connect.
func (s *Server) ConnectSession(c echo.Context) error {
	var req ConnectSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	sessionKey, err := kernel.SessionKeyFromString(req.SessionKey)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewConnectSessionCommand(sessionKey, req.DeviceName)
	if err != nil {
		return s.writeError(c, err)
	}

	if _, err = s.connectSessionHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Session connected"})
}

// EndSession handles POST /api/session/end. Ending an unknown session
// succeeds.
func (s *Server) EndSession(c echo.Context) error {
	var req EndSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	sessionKey, err := kernel.SessionKeyFromString(req.SessionKey)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewEndSessionCommand(sessionKey)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.endSessionHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Session ended"})
}

// GetSession handles GET /api/session/:sessionKey for live monitoring.
func (s *Server) GetSession(c echo.Context) error {
	sessionKey, err := kernel.SessionKeyFromString(c.Param("sessionKey"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	}

	query, err := queries.NewGetSessionQuery(sessionKey)
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.getSessionHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, sessionFromReadModel(resp))
}

func (s *Server) lookupByBarcode(c echo.Context) (queries.GetParcelQueryResponse, error) {
	parcelID, err := kernel.UUIDFromString(c.Param("barcode"))
	if err != nil {
		return queries.GetParcelQueryResponse{}, errs.NewObjectNotFoundError("barcode", c.Param("barcode"))
	}

	query, err := queries.NewGetParcelQueryByID(parcelID)
	if err != nil {
		return queries.GetParcelQueryResponse{}, err
	}

	return s.getParcelHandler.Handle(c.Request().Context(), query)
}

func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrSessionNotConnected):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session not connected"})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporary conflict, try again"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func sessionFromAggregate(aggregate *session.Session) SessionJSON {
	scans := make([]ScanJSON, 0, len(aggregate.Scans()))
	for _, record := range aggregate.Scans() {
		scans = append(scans, ScanJSON{
			PackageID:     record.ParcelID.String(),
			CheckpointSeq: record.CheckpointSeq,
			At:            record.At,
		})
	}

	return SessionJSON{
		SessionKey: aggregate.Key().String(),
		Employee:   aggregate.Employee(),
		Location:   aggregate.Location(),
		State:      aggregate.State().String(),
		DeviceName: aggregate.DeviceName(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
		Scans:      scans,
	}
}

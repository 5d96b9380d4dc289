package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/parcel"
)

// Request bodies. Route paths and field names are a contract with existing
// scanner clients and must not change.

type CreatePackageRequest struct {
	CustomerName  string `json:"customerName"`
	RecipientName string `json:"recipientName"`
	Destination   string `json:"destination"`
	Details       string `json:"details"`
}

type ScanPackageRequest struct {
	SessionKey string `json:"sessionKey"`
	Barcode    string `json:"barcode"`
	Action     string `json:"action"`
	Location   string `json:"location"`
	Employee   string `json:"employee"`
	Notes      string `json:"notes"`
}

type StartSessionRequest struct {
	Employee string `json:"employee"`
	Location string `json:"location"`
}

type JoinSessionRequest struct {
	SessionKey string `json:"sessionKey"`
	DeviceName string `json:"deviceName"`
}

type ConnectSessionRequest struct {
	SessionKey string `json:"sessionKey"`
	DeviceName string `json:"deviceName"`
}

type EndSessionRequest struct {
	SessionKey string `json:"sessionKey"`
}

// Response bodies.

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PackageEnvelope struct {
	Message string      `json:"message"`
	Package PackageJSON `json:"package"`
}

type SessionKeyEnvelope struct {
	Message    string `json:"message"`
	SessionKey string `json:"sessionKey"`
}

type SessionEnvelope struct {
	Message string      `json:"message"`
	Session SessionJSON `json:"session"`
}

type CheckpointJSON struct {
	Order          int       `json:"order"`
	LocationName   string    `json:"locationName"`
	ScannedBy      string    `json:"scannedBy,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	InternalStatus string    `json:"internalStatus"`
	PublicStatus   string    `json:"publicStatus"`
}

type PackageJSON struct {
	ID                  string           `json:"id"`
	TrackingNumber      string           `json:"trackingNumber"`
	CustomerName        string           `json:"customerName"`
	RecipientName       string           `json:"recipientName"`
	Destination         string           `json:"destination"`
	Details             string           `json:"details,omitempty"`
	CurrentPublicStatus string           `json:"currentPublicStatus"`
	Checkpoints         []CheckpointJSON `json:"checkpoints"`
}

type ScanJSON struct {
	PackageID     string    `json:"packageId"`
	CheckpointSeq int       `json:"checkpointSeq"`
	At            time.Time `json:"at"`
}

type SessionJSON struct {
	SessionKey string     `json:"sessionKey"`
	Employee   string     `json:"employee"`
	Location   string     `json:"location"`
	State      string     `json:"state"`
	DeviceName string     `json:"deviceName,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Scans      []ScanJSON `json:"scans"`
}

func packageFromAggregate(aggregate *parcel.Parcel) PackageJSON {
	checkpoints := aggregate.Checkpoints()
	cpJSON := make([]CheckpointJSON, 0, len(checkpoints))
	for _, cp := range checkpoints {
		cpJSON = append(cpJSON, CheckpointJSON{
			Order:          cp.Seq(),
			LocationName:   cp.LocationName(),
			ScannedBy:      cp.ScannedBy(),
			Notes:          cp.Notes(),
			Timestamp:      cp.Timestamp(),
			InternalStatus: cp.InternalStatus().String(),
			PublicStatus:   cp.PublicStatus().String(),
		})
	}

	return PackageJSON{
		ID:                  aggregate.ID().String(),
		TrackingNumber:      aggregate.TrackingNumber().String(),
		CustomerName:        aggregate.CustomerName(),
		RecipientName:       aggregate.RecipientName(),
		Destination:         aggregate.Destination(),
		Details:             aggregate.Details(),
		CurrentPublicStatus: aggregate.CurrentPublicStatus().String(),
		Checkpoints:         cpJSON,
	}
}

func packageFromReadModel(resp queries.GetParcelQueryResponse) PackageJSON {
	cpJSON := make([]CheckpointJSON, 0, len(resp.Checkpoints))
	for _, cp := range resp.Checkpoints {
		cpJSON = append(cpJSON, CheckpointJSON{
			Order:          cp.Order,
			LocationName:   cp.LocationName,
			ScannedBy:      cp.ScannedBy,
			Notes:          cp.Notes,
			Timestamp:      cp.Timestamp,
			InternalStatus: cp.InternalStatus,
			PublicStatus:   cp.PublicStatus,
		})
	}

	return PackageJSON{
		ID:                  resp.ID.String(),
		TrackingNumber:      resp.TrackingNumber,
		CustomerName:        resp.CustomerName,
		RecipientName:       resp.RecipientName,
		Destination:         resp.Destination,
		Details:             resp.Details,
		CurrentPublicStatus: resp.CurrentPublicStatus,
		Checkpoints:         cpJSON,
	}
}

func sessionFromReadModel(resp queries.GetSessionQueryResponse) SessionJSON {
	scans := make([]ScanJSON, 0, len(resp.Scans))
	for _, s := range resp.Scans {
		scans = append(scans, ScanJSON{
			PackageID:     s.ParcelID.String(),
			CheckpointSeq: s.CheckpointSeq,
			At:            s.At,
		})
	}

	return SessionJSON{
		SessionKey: resp.SessionKey,
		Employee:   resp.Employee,
		Location:   resp.Location,
		State:      resp.State,
		DeviceName: resp.DeviceName,
		CreatedAt:  resp.CreatedAt,
		UpdatedAt:  resp.UpdatedAt,
		Scans:      scans,
	}
}

package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// sessionRecord is the JSON wire form of a session.
type sessionRecord struct {
	Key        string       `json:"key"`
	Employee   string       `json:"employee"`
	Location   string       `json:"location"`
	State      int          `json:"state"`
	DeviceName string       `json:"deviceName,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	Scans      []scanRecord `json:"scans,omitempty"`
}

type scanRecord struct {
	ParcelID      string    `json:"parcelId"`
	CheckpointSeq int       `json:"checkpointSeq"`
	At            time.Time `json:"at"`
}

func fromDomain(aggregate *session.Session) sessionRecord {
	scans := aggregate.Scans()
	records := make([]scanRecord, 0, len(scans))
	for _, s := range scans {
		records = append(records, scanRecord{
			ParcelID:      s.ParcelID.String(),
			CheckpointSeq: s.CheckpointSeq,
			At:            s.At,
		})
	}

	return sessionRecord{
		Key:        aggregate.Key().String(),
		Employee:   aggregate.Employee(),
		Location:   aggregate.Location(),
		State:      int(aggregate.State()),
		DeviceName: aggregate.DeviceName(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
		Scans:      records,
	}
}

func toDomain(record sessionRecord) (*session.Session, error) {
	key, err := kernel.SessionKeyFromString(record.Key)
	if err != nil {
		return nil, err
	}

	scans := make([]session.ScanRecord, 0, len(record.Scans))
	for _, s := range record.Scans {
		parcelID, idErr := kernel.UUIDFromString(s.ParcelID)
		if idErr != nil {
			return nil, idErr
		}
		scans = append(scans, session.ScanRecord{
			ParcelID:      parcelID,
			CheckpointSeq: s.CheckpointSeq,
			At:            s.At,
		})
	}

	return session.RestoreSession(
		key,
		record.Employee,
		record.Location,
		session.State(record.State),
		record.DeviceName,
		record.CreatedAt,
		record.UpdatedAt,
		scans,
	)
}

type redisSessionRepository struct {
	uow *UnitOfWork
}

func (r *redisSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(fromDomain(aggregate))
	if err != nil {
		return err
	}

	store := r.uow.store
	ok, err := store.client.SetNX(ctx, keyPrefix+aggregate.Key().String(), payload, store.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewConcurrencyConflictError("sessionKey", aggregate.Key().String())
	}

	return nil
}

func (r *redisSessionRepository) Update(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(fromDomain(aggregate))
	if err != nil {
		return err
	}

	// XX writes only an existing record; a write also refreshes the TTL.
	store := r.uow.store
	ok, err := store.client.SetXX(ctx, keyPrefix+aggregate.Key().String(), payload, store.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewObjectNotFoundError("sessionKey", aggregate.Key().String())
	}

	return nil
}

func (r *redisSessionRepository) Get(ctx context.Context, key kernel.SessionKey) (*session.Session, error) {
	return r.read(ctx, keyPrefix+key.String())
}

func (r *redisSessionRepository) GetForUpdate(ctx context.Context, key kernel.SessionKey) (*session.Session, error) {
	r.uow.holdKey(key.String())
	return r.read(ctx, keyPrefix+key.String())
}

func (r *redisSessionRepository) Delete(ctx context.Context, key kernel.SessionKey) error {
	return r.uow.store.client.Del(ctx, keyPrefix+key.String()).Err()
}

func (r *redisSessionRepository) GetUpdatedBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*session.Session, error) {
	store := r.uow.store

	var stale []*session.Session
	iter := store.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		loaded, err := r.read(ctx, iter.Val())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue // expired between SCAN and GET
			}
			return nil, err
		}
		if loaded.UpdatedAt().Before(cutoff) {
			stale = append(stale, loaded)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}

func (r *redisSessionRepository) read(ctx context.Context, redisKey string) (*session.Session, error) {
	payload, err := r.uow.store.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewObjectNotFoundError("sessionKey", redisKey)
		}
		return nil, err
	}

	var record sessionRecord
	if err = json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}

	return toDomain(record)
}

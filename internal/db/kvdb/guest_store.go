// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

const bucketGuest = "guest_store"

func NewGuestStore(db *bolt.DB) (*GuestStore, error) {
	return &GuestStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketGuest))
		return err
	})
}

type GuestStore struct {
	db *bolt.DB
}

func (g *GuestStore) CreateGuest(ctx context.Context, guest *model.Guest) (uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateGuest")
	defer span.End()

	if guest.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new id")
		guest.ID = uuid.New()
	}
	now := time.Now().UTC()
	if guest.CreatedAt == nil {
		guest.CreatedAt = &now
	}
	if guest.UpdatedAt == nil {
		guest.UpdatedAt = &now
	}

	j, err := json.Marshal(guest)
	if err != nil {
		return uuid.Nil, err
	}

	span.AddEvent("Update bucket")
	return guest.ID, g.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketGuest)).Put(guest.ID[:], j)
	})
}

func (g *GuestStore) CreateGuests(ctx context.Context, guests []*model.Guest) (int, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateGuests")
	defer span.End()

	if len(guests) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	span.AddEvent("Update bucket")
	count := 0
	err := g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		for _, guest := range guests {
			if guest.ID == uuid.Nil {
				guest.ID = uuid.New()
			}
			if guest.CreatedAt == nil {
				guest.CreatedAt = &now
			}
			if guest.UpdatedAt == nil {
				guest.UpdatedAt = &now
			}
			j, err := json.Marshal(guest)
			if err != nil {
				return err
			}
			if err := bucket.Put(guest.ID[:], j); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (g *GuestStore) GetGuestByID(ctx context.Context, guestID uuid.UUID) (*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetGuestByID")
	defer span.End()

	span.AddEvent("View bucket")
	guest := &model.Guest{}
	err := g.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketGuest)).Get(guestID[:])
		if res == nil {
			return model.ErrNotFound
		}
		return json.Unmarshal(res, guest)
	})
	if err != nil {
		return nil, err
	}
	return guest, nil
}

func (g *GuestStore) ListGuestsByInvitation(ctx context.Context, invitationID uuid.UUID) ([]*model.Guest, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListGuestsByInvitation")
	defer span.End()

	span.AddEvent("View bucket")
	var guests []*model.Guest
	err := g.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketGuest)).ForEach(func(_, v []byte) error {
			guest := &model.Guest{}
			if err := json.Unmarshal(v, guest); err != nil {
				span.RecordError(err)
				return err
			}
			if guest.InvitationID == invitationID {
				guests = append(guests, guest)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(guests, func(i, j int) bool {
		return guests[i].Name < guests[j].Name
	})
	return guests, nil
}

func (g *GuestStore) SetGuestConfirmation(ctx context.Context, guestID uuid.UUID, confirmed bool) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SetGuestConfirmation")
	defer span.End()

	if guestID == uuid.Nil {
		err := errors.New("guest ID is required")
		span.RecordError(err)
		return err
	}

	span.AddEvent("Update bucket")
	return g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		res := bucket.Get(guestID[:])
		if res == nil {
			return model.ErrNotFound
		}
		guest := &model.Guest{}
		if err := json.Unmarshal(res, guest); err != nil {
			return err
		}
		guest.Confirmed = confirmed
		now := time.Now().UTC()
		guest.UpdatedAt = &now
		j, err := json.Marshal(guest)
		if err != nil {
			return err
		}
		return bucket.Put(guestID[:], j)
	})
}

// DeleteGuest removes one guest after checking, inside the same
// transaction, that the guest's invitation belongs to ownerID.
func (g *GuestStore) DeleteGuest(ctx context.Context, guestID, ownerID uuid.UUID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteGuest")
	defer span.End()

	span.AddEvent("Update bucket")
	return g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		res := bucket.Get(guestID[:])
		if res == nil {
			return model.ErrNotFound
		}
		guest := &model.Guest{}
		if err := json.Unmarshal(res, guest); err != nil {
			return err
		}
		invRaw := tx.Bucket([]byte(bucketInvitation)).Get(guest.InvitationID[:])
		if invRaw == nil {
			return model.ErrNotFound
		}
		inv := &model.Invitation{}
		if err := json.Unmarshal(invRaw, inv); err != nil {
			return err
		}
		if inv.UserID != ownerID {
			return model.ErrNotFound
		}
		return bucket.Delete(guestID[:])
	})
}

func (g *GuestStore) DeleteGuestsByInvitation(ctx context.Context, invitationID uuid.UUID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteGuestsByInvitation")
	defer span.End()

	span.AddEvent("Update bucket")
	return g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketGuest))
		var toDelete [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			guest := &model.Guest{}
			if err := json.Unmarshal(v, guest); err != nil {
				return err
			}
			if guest.InvitationID == invitationID {
				key := make([]byte, len(k))
				copy(key, k)
				toDelete = append(toDelete, key)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range toDelete {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

const (
	bucketInvitation = "invitation_store"
	// maps public id -> invitation id, so the public page never scans.
	bucketInvitationPublicID = "invitation_public_ids"
)

func NewInvitationStore(db *bolt.DB) (*InvitationStore, error) {
	return &InvitationStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketInvitation)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketInvitationPublicID))
		return err
	})
}

type InvitationStore struct {
	db *bolt.DB
}

func (s *InvitationStore) CreateInvitation(ctx context.Context, inv *model.Invitation) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateInvitation")
	defer span.End()

	if inv.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new id")
		inv.ID = uuid.New()
	}
	// Rows copied over from another backend keep their timestamps.
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = now
	}

	j, err := json.Marshal(inv)
	if err != nil {
		return err
	}

	span.AddEvent("Update bucket")
	return s.db.Update(func(tx *bolt.Tx) error {
		idx := tx.Bucket([]byte(bucketInvitationPublicID))
		if idx.Get([]byte(inv.PublicID)) != nil {
			return fmt.Errorf("public id %q already exists", inv.PublicID)
		}
		if err := idx.Put([]byte(inv.PublicID), inv.ID[:]); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketInvitation)).Put(inv.ID[:], j)
	})
}

func (s *InvitationStore) GetInvitationByPublicID(ctx context.Context, publicID string) (*model.Invitation, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetInvitationByPublicID")
	defer span.End()

	span.AddEvent("View bucket")
	inv := &model.Invitation{}
	err := s.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(bucketInvitationPublicID)).Get([]byte(publicID))
		if id == nil {
			return model.ErrNotFound
		}
		res := tx.Bucket([]byte(bucketInvitation)).Get(id)
		if res == nil {
			return model.ErrNotFound
		}
		return json.Unmarshal(res, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvitationStore) ListInvitationsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Invitation, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListInvitationsByUser")
	defer span.End()

	span.AddEvent("View bucket")
	var invs []*model.Invitation
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketInvitation)).ForEach(func(_, v []byte) error {
			inv := &model.Invitation{}
			if err := json.Unmarshal(v, inv); err != nil {
				span.RecordError(err)
				return err
			}
			if inv.UserID == userID {
				invs = append(invs, inv)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(invs, func(i, j int) bool {
		return invs[i].CreatedAt.After(invs[j].CreatedAt)
	})
	return invs, nil
}

func (s *InvitationStore) UpdateInvitation(ctx context.Context, id, ownerID uuid.UUID, data *model.WeddingData) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdateInvitation")
	defer span.End()

	span.AddEvent("Update bucket")
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketInvitation))
		res := bucket.Get(id[:])
		if res == nil {
			return model.ErrNotFound
		}
		inv := &model.Invitation{}
		if err := json.Unmarshal(res, inv); err != nil {
			return err
		}
		// The owner filter, not an authorization step: a foreign id behaves
		// exactly like a missing one.
		if inv.UserID != ownerID {
			return model.ErrNotFound
		}
		inv.Data = *data.Clone()
		inv.UpdatedAt = time.Now().UTC()
		j, err := json.Marshal(inv)
		if err != nil {
			return err
		}
		return bucket.Put(id[:], j)
	})
}

func (s *InvitationStore) DeleteInvitation(ctx context.Context, id, ownerID uuid.UUID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteInvitation")
	defer span.End()

	span.AddEvent("Update bucket")
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketInvitation))
		res := bucket.Get(id[:])
		if res == nil {
			return model.ErrNotFound
		}
		inv := &model.Invitation{}
		if err := json.Unmarshal(res, inv); err != nil {
			return err
		}
		if inv.UserID != ownerID {
			return model.ErrNotFound
		}
		if err := tx.Bucket([]byte(bucketInvitationPublicID)).Delete([]byte(inv.PublicID)); err != nil {
			return err
		}
		return bucket.Delete(id[:])
	})
}

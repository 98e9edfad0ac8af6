// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

// Full-bucket dumps used by the convert tool when moving a kvdb file into
// postgres. The serving interfaces stay scoped to one user or invitation,
// these walk everything.

func (s *InvitationStore) AllInvitations(ctx context.Context) ([]*model.Invitation, error) {
	_, span := tracer.Start(ctx, "AllInvitations")
	defer span.End()

	var invs []*model.Invitation
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketInvitation)).ForEach(func(_, v []byte) error {
			inv := &model.Invitation{}
			if err := json.Unmarshal(v, inv); err != nil {
				return err
			}
			invs = append(invs, inv)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return invs, nil
}

func (g *GuestStore) AllGuests(ctx context.Context) ([]*model.Guest, error) {
	_, span := tracer.Start(ctx, "AllGuests")
	defer span.End()

	var guests []*model.Guest
	err := g.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketGuest)).ForEach(func(_, v []byte) error {
			guest := &model.Guest{}
			if err := json.Unmarshal(v, guest); err != nil {
				return err
			}
			guests = append(guests, guest)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (s *UserStore) AllUsers(ctx context.Context) ([]*model.User, error) {
	_, span := tracer.Start(ctx, "AllUsers")
	defer span.End()

	var users []*model.User
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketUser)).ForEach(func(_, v []byte) error {
			user := &model.User{}
			if err := json.Unmarshal(v, user); err != nil {
				return err
			}
			users = append(users, user)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DraftStore) AllDrafts(ctx context.Context) (map[uuid.UUID]*model.WeddingData, error) {
	_, span := tracer.Start(ctx, "AllDrafts")
	defer span.End()

	drafts := make(map[uuid.UUID]*model.WeddingData)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDraft)).ForEach(func(k, v []byte) error {
			userID, err := uuid.FromBytes(k)
			if err != nil {
				return err
			}
			data := &model.WeddingData{}
			if err := json.Unmarshal(v, data); err != nil {
				return err
			}
			drafts[userID] = data
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

const (
	bucketUser = "user_store"
	// maps email -> user id.
	bucketUserEmail = "user_emails"
)

func NewUserStore(db *bolt.DB) (*UserStore, error) {
	return &UserStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketUser)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketUserEmail))
		return err
	})
}

type UserStore struct {
	db *bolt.DB
}

func (s *UserStore) CreateUser(ctx context.Context, user *model.User) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateUser")
	defer span.End()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	j, err := json.Marshal(user)
	if err != nil {
		return err
	}

	span.AddEvent("Update bucket")
	return s.db.Update(func(tx *bolt.Tx) error {
		emails := tx.Bucket([]byte(bucketUserEmail))
		if emails.Get([]byte(user.Email)) != nil {
			return model.ErrEmailTaken
		}
		if err := emails.Put([]byte(user.Email), user.ID[:]); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketUser)).Put(user.ID[:], j)
	})
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByEmail")
	defer span.End()

	span.AddEvent("View bucket")
	user := &model.User{}
	err := s.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(bucketUserEmail)).Get([]byte(email))
		if id == nil {
			return model.ErrNotFound
		}
		res := tx.Bucket([]byte(bucketUser)).Get(id)
		if res == nil {
			return model.ErrNotFound
		}
		return json.Unmarshal(res, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByID")
	defer span.End()

	span.AddEvent("View bucket")
	user := &model.User{}
	err := s.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketUser)).Get(userID[:])
		if res == nil {
			return model.ErrNotFound
		}
		return json.Unmarshal(res, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

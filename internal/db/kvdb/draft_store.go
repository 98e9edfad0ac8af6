// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

const bucketDraft = "draft_store"

// DraftStore keeps the per-user editor draft. It is written eagerly on
// every editor mutation and read back when the editor opens without an
// invitation id.
func NewDraftStore(db *bolt.DB) (*DraftStore, error) {
	return &DraftStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDraft))
		return err
	})
}

type DraftStore struct {
	db *bolt.DB
}

func (s *DraftStore) PutDraft(ctx context.Context, userID uuid.UUID, data *model.WeddingData) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "PutDraft")
	defer span.End()

	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	span.AddEvent("Update bucket")
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDraft)).Put(userID[:], j)
	})
}

func (s *DraftStore) GetDraft(ctx context.Context, userID uuid.UUID) (*model.WeddingData, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetDraft")
	defer span.End()

	span.AddEvent("View bucket")
	data := &model.WeddingData{}
	err := s.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketDraft)).Get(userID[:])
		if res == nil {
			return model.ErrNotFound
		}
		return json.Unmarshal(res, data)
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *DraftStore) DeleteDraft(ctx context.Context, userID uuid.UUID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteDraft")
	defer span.End()

	span.AddEvent("Update bucket")
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDraft)).Delete(userID[:])
	})
}

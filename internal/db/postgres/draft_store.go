// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func NewDraftStore(db *sql.DB) *DraftStore {
	return &DraftStore{db: db}
}

type DraftStore struct {
	db *sql.DB
}

func (s *DraftStore) PutDraft(ctx context.Context, userID uuid.UUID, data *model.WeddingData) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "PutDraft")
	defer span.End()

	j, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO drafts (user_id, data, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		userID, j)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *DraftStore) GetDraft(ctx context.Context, userID uuid.UUID) (*model.WeddingData, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GetDraft")
	defer span.End()

	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM drafts WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	data := &model.WeddingData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return data, nil
}

func (s *DraftStore) DeleteDraft(ctx context.Context, userID uuid.UUID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteDraft")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE user_id = $1`, userID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

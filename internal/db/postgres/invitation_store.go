// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func NewInvitationStore(db *sql.DB) *InvitationStore {
	return &InvitationStore{db: db}
}

type InvitationStore struct {
	db *sql.DB
}

const invitationColumns = `id, public_id, user_id,
	bride_first_name, bride_last_name, groom_first_name, groom_last_name,
	wedding_date, background_image_url, COALESCE(mobile_background_image_url, ''),
	ceremony_location, reception_location, gallery_images, dress_code,
	gifts_info, theme_colors, created_at, updated_at`

func (s *InvitationStore) CreateInvitation(ctx context.Context, inv *model.Invitation) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateInvitation")
	defer span.End()

	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	// Rows copied over from another backend keep their timestamps so the
	// dashboard's created-desc order survives a migration.
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = now
	}

	enc, err := encodeWeddingData(&inv.Data)
	if err != nil {
		return err
	}

	query := `INSERT INTO invitations (
			id, public_id, user_id,
			bride_first_name, bride_last_name, groom_first_name, groom_last_name,
			wedding_date, background_image_url, mobile_background_image_url,
			ceremony_location, reception_location, gallery_images, dress_code,
			gifts_info, theme_colors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err = s.db.ExecContext(ctx, query,
		inv.ID, inv.PublicID, inv.UserID,
		inv.Data.BrideFirstName, inv.Data.BrideLastName,
		inv.Data.GroomFirstName, inv.Data.GroomLastName,
		inv.Data.WeddingDate, inv.Data.BackgroundImageURL, nullIfEmpty(inv.Data.MobileBackgroundImageURL),
		enc.ceremony, enc.reception, enc.gallery, enc.dressCode,
		enc.gifts, enc.theme, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *InvitationStore) GetInvitationByPublicID(ctx context.Context, publicID string) (*model.Invitation, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GetInvitationByPublicID")
	defer span.End()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE public_id = $1`, publicID)
	inv, err := scanInvitation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

func (s *InvitationStore) ListInvitationsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Invitation, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ListInvitationsByUser")
	defer span.End()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var invs []*model.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("db error: %w", err)
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (s *InvitationStore) UpdateInvitation(ctx context.Context, id, ownerID uuid.UUID, data *model.WeddingData) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "UpdateInvitation")
	defer span.End()

	enc, err := encodeWeddingData(data)
	if err != nil {
		return err
	}

	// Ownership is part of the filter: a foreign id matches zero rows.
	query := `UPDATE invitations SET
			bride_first_name = $1, bride_last_name = $2,
			groom_first_name = $3, groom_last_name = $4,
			wedding_date = $5, background_image_url = $6, mobile_background_image_url = $7,
			ceremony_location = $8, reception_location = $9, gallery_images = $10,
			dress_code = $11, gifts_info = $12, theme_colors = $13, updated_at = now()
		WHERE id = $14 AND user_id = $15`

	res, err := s.db.ExecContext(ctx, query,
		data.BrideFirstName, data.BrideLastName,
		data.GroomFirstName, data.GroomLastName,
		data.WeddingDate, data.BackgroundImageURL, nullIfEmpty(data.MobileBackgroundImageURL),
		enc.ceremony, enc.reception, enc.gallery,
		enc.dressCode, enc.gifts, enc.theme, id, ownerID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return errNotFoundOnZeroRows(res)
}

func (s *InvitationStore) DeleteInvitation(ctx context.Context, id, ownerID uuid.UUID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteInvitation")
	defer span.End()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return errNotFoundOnZeroRows(res)
}

type encodedWeddingData struct {
	ceremony, reception, gallery, dressCode, gifts, theme []byte
}

func encodeWeddingData(data *model.WeddingData) (*encodedWeddingData, error) {
	enc := &encodedWeddingData{}
	for _, f := range []struct {
		dst *[]byte
		src any
	}{
		{&enc.ceremony, data.CeremonyLocation},
		{&enc.reception, data.ReceptionLocation},
		{&enc.gallery, data.GalleryImages},
		{&enc.dressCode, data.DressCode},
		{&enc.gifts, data.GiftsInfo},
		{&enc.theme, data.ThemeColors},
	} {
		j, err := json.Marshal(f.src)
		if err != nil {
			return nil, fmt.Errorf("encode invitation data: %w", err)
		}
		*f.dst = j
	}
	return enc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row rowScanner) (*model.Invitation, error) {
	inv := &model.Invitation{}
	var ceremony, reception, gallery, dressCode, gifts, theme []byte
	err := row.Scan(
		&inv.ID, &inv.PublicID, &inv.UserID,
		&inv.Data.BrideFirstName, &inv.Data.BrideLastName,
		&inv.Data.GroomFirstName, &inv.Data.GroomLastName,
		&inv.Data.WeddingDate, &inv.Data.BackgroundImageURL, &inv.Data.MobileBackgroundImageURL,
		&ceremony, &reception, &gallery, &dressCode,
		&gifts, &theme, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{ceremony, &inv.Data.CeremonyLocation},
		{reception, &inv.Data.ReceptionLocation},
		{gallery, &inv.Data.GalleryImages},
		{dressCode, &inv.Data.DressCode},
		{gifts, &inv.Data.GiftsInfo},
		{theme, &inv.Data.ThemeColors},
	} {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode invitation data: %w", err)
		}
	}
	return inv, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func errNotFoundOnZeroRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func NewGuestStore(db *sql.DB) *GuestStore {
	return &GuestStore{db: db}
}

type GuestStore struct {
	db *sql.DB
}

func (g *GuestStore) CreateGuest(ctx context.Context, guest *model.Guest) (uuid.UUID, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateGuest")
	defer span.End()

	if guest.ID == uuid.Nil {
		guest.ID = uuid.New()
	}
	stampGuest(guest)

	query := `INSERT INTO guests (id, invitation_id, name, phone, passes, confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := g.db.ExecContext(ctx, query,
		guest.ID, guest.InvitationID, guest.Name, nullIfEmpty(guest.Phone),
		guest.Passes, guest.Confirmed, guest.CreatedAt, guest.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		return uuid.Nil, fmt.Errorf("db error: %w", err)
	}
	return guest.ID, nil
}

func (g *GuestStore) CreateGuests(ctx context.Context, guests []*model.Guest) (int, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateGuests")
	defer span.End()

	if len(guests) == 0 {
		return 0, nil
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for _, guest := range guests {
		if guest.ID == uuid.Nil {
			guest.ID = uuid.New()
		}
		stampGuest(guest)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO guests (id, invitation_id, name, phone, passes, confirmed, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			guest.ID, guest.InvitationID, guest.Name, nullIfEmpty(guest.Phone),
			guest.Passes, guest.Confirmed, guest.CreatedAt, guest.UpdatedAt)
		if err != nil {
			span.RecordError(err)
			return 0, fmt.Errorf("db error: %w", err)
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// stampGuest fills missing timestamps. Guests copied over from another
// backend keep theirs.
func stampGuest(guest *model.Guest) {
	now := time.Now().UTC()
	if guest.CreatedAt == nil {
		guest.CreatedAt = &now
	}
	if guest.UpdatedAt == nil {
		guest.UpdatedAt = &now
	}
}

func (g *GuestStore) GetGuestByID(ctx context.Context, guestID uuid.UUID) (*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GetGuestByID")
	defer span.End()

	guest := &model.Guest{}
	var phone sql.NullString
	err := g.db.QueryRowContext(ctx,
		`SELECT id, invitation_id, name, phone, passes, confirmed, created_at, updated_at
		 FROM guests WHERE id = $1`, guestID).
		Scan(&guest.ID, &guest.InvitationID, &guest.Name, &phone,
			&guest.Passes, &guest.Confirmed, &guest.CreatedAt, &guest.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	guest.Phone = phone.String
	return guest, nil
}

func (g *GuestStore) ListGuestsByInvitation(ctx context.Context, invitationID uuid.UUID) ([]*model.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ListGuestsByInvitation")
	defer span.End()

	rows, err := g.db.QueryContext(ctx,
		`SELECT id, invitation_id, name, phone, passes, confirmed, created_at, updated_at
		 FROM guests WHERE invitation_id = $1 ORDER BY name ASC`, invitationID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var guests []*model.Guest
	for rows.Next() {
		guest := &model.Guest{}
		var phone sql.NullString
		if err := rows.Scan(&guest.ID, &guest.InvitationID, &guest.Name, &phone,
			&guest.Passes, &guest.Confirmed, &guest.CreatedAt, &guest.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("db error: %w", err)
		}
		guest.Phone = phone.String
		guests = append(guests, guest)
	}
	return guests, rows.Err()
}

func (g *GuestStore) SetGuestConfirmation(ctx context.Context, guestID uuid.UUID, confirmed bool) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "SetGuestConfirmation")
	defer span.End()

	res, err := g.db.ExecContext(ctx,
		`UPDATE guests SET confirmed = $1, updated_at = $2 WHERE id = $3`,
		confirmed, time.Now().UTC(), guestID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return errNotFoundOnZeroRows(res)
}

func (g *GuestStore) DeleteGuest(ctx context.Context, guestID, ownerID uuid.UUID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteGuest")
	defer span.End()

	// Owner check folded into the delete filter, same shape as invitation
	// update/delete.
	res, err := g.db.ExecContext(ctx,
		`DELETE FROM guests g USING invitations i
		 WHERE g.id = $1 AND i.id = g.invitation_id AND i.user_id = $2`,
		guestID, ownerID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return errNotFoundOnZeroRows(res)
}

func (g *GuestStore) DeleteGuestsByInvitation(ctx context.Context, invitationID uuid.UUID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteGuestsByInvitation")
	defer span.End()

	_, err := g.db.ExecContext(ctx,
		`DELETE FROM guests WHERE invitation_id = $1`, invitationID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

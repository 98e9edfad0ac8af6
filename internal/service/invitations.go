// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Package service wraps the stores with the application's failure policy:
// expected failures are logged and turned into sentinels (nil, empty,
// false, zero) so handlers branch on truthiness instead of error plumbing.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func NewInvitationService(iStore db.InvitationStore, gStore db.GuestStore) *InvitationService {
	return &InvitationService{
		iStore: iStore,
		gStore: gStore,
		logger: slog.Default().WithGroup("invitations"),
	}
}

type InvitationService struct {
	iStore db.InvitationStore
	gStore db.GuestStore
	logger *slog.Logger
}

// ListForUser returns the user's invitations newest first. A backend
// failure is logged and yields an empty list.
func (s *InvitationService) ListForUser(ctx context.Context, userID uuid.UUID) []*model.Invitation {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "InvitationService.ListForUser")
	defer span.End()

	invs, err := s.iStore.ListInvitationsByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "could not list invitations", "error", err, "user", userID)
		return nil
	}
	return invs
}

// GetByPublicID returns (nil, nil) when no such invitation exists, which is
// a normal outcome, and a non-nil error only when the lookup itself failed.
func (s *InvitationService) GetByPublicID(ctx context.Context, publicID string) (*model.Invitation, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "InvitationService.GetByPublicID")
	defer span.End()

	inv, err := s.iStore.GetInvitationByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "could not fetch invitation", "error", err, "public-id", publicID)
		return nil, err
	}
	return inv, nil
}

// Create mints the public id and inserts the invitation. Returns nil on
// failure; the caller must not assume a row exists then.
func (s *InvitationService) Create(ctx context.Context, data *model.WeddingData, ownerID uuid.UUID) *model.Invitation {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "InvitationService.Create")
	defer span.End()

	publicID, err := gonanoid.New(model.PublicIDLength)
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "could not generate public id", "error", err)
		return nil
	}

	inv := &model.Invitation{
		PublicID: publicID,
		UserID:   ownerID,
		Data:     *data.Clone(),
	}
	if err := s.iStore.CreateInvitation(ctx, inv); err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "could not create invitation", "error", err, "user", ownerID)
		return nil
	}
	return inv
}

// Update overwrites the invitation's content. The public id is never
// re-minted. False means nothing was written, either because the row is
// gone or because it belongs to someone else.
func (s *InvitationService) Update(ctx context.Context, id uuid.UUID, data *model.WeddingData, ownerID uuid.UUID) bool {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "InvitationService.Update")
	defer span.End()

	if err := s.iStore.UpdateInvitation(ctx, id, ownerID, data); err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "could not update invitation", "error", err, "id", id, "user", ownerID)
		return false
	}
	return true
}

// Delete removes the invitation and detaches its guest list.
func (s *InvitationService) Delete(ctx context.Context, id, ownerID uuid.UUID) bool {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "InvitationService.Delete")
	defer span.End()

	if err := s.iStore.DeleteInvitation(ctx, id, ownerID); err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "could not delete invitation", "error", err, "id", id, "user", ownerID)
		return false
	}
	if err := s.gStore.DeleteGuestsByInvitation(ctx, id); err != nil {
		// The invitation row is already gone, leftover guests are
		// unreachable. Log and move on.
		s.logger.WarnContext(ctx, "could not delete guest list", "error", err, "invitation", id)
	}
	return true
}

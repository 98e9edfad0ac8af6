// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func NewGuestService(store db.GuestStore) *GuestService {
	return &GuestService{
		store:  store,
		logger: slog.Default().WithGroup("guests"),
	}
}

type GuestService struct {
	store  db.GuestStore
	logger *slog.Logger
}

// ListForInvitation returns the guest list sorted by name. Failure is
// logged and yields an empty list.
func (s *GuestService) ListForInvitation(ctx context.Context, invitationID uuid.UUID) []*model.Guest {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestService.ListForInvitation")
	defer span.End()

	guests, err := s.store.ListGuestsByInvitation(ctx, invitationID)
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "could not list guests", "error", err, "invitation", invitationID)
		return nil
	}
	return guests
}

// Add inserts one unconfirmed guest. A blank name is rejected, passes below
// one become one. Returns nil when nothing was inserted.
func (s *GuestService) Add(ctx context.Context, invitationID uuid.UUID, input model.GuestInput) *model.Guest {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestService.Add")
	defer span.End()

	guest, ok := normalizeInput(invitationID, input)
	if !ok {
		s.logger.WarnContext(ctx, "rejected guest with blank name", "invitation", invitationID)
		return nil
	}

	if _, err := s.store.CreateGuest(ctx, guest); err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "could not add guest", "error", err, "invitation", invitationID)
		return nil
	}
	return guest
}

// BulkImport inserts the given entries in one batch and returns how many
// rows were written. An empty input is a no-op returning 0, not an error.
func (s *GuestService) BulkImport(ctx context.Context, invitationID uuid.UUID, inputs []model.GuestInput) int {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestService.BulkImport")
	defer span.End()

	if len(inputs) == 0 {
		return 0
	}

	guests := make([]*model.Guest, 0, len(inputs))
	for _, input := range inputs {
		if guest, ok := normalizeInput(invitationID, input); ok {
			guests = append(guests, guest)
		}
	}
	if len(guests) == 0 {
		return 0
	}

	n, err := s.store.CreateGuests(ctx, guests)
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "could not import guests", "error", err, "invitation", invitationID)
		return 0
	}
	return n
}

// SetConfirmation flips one guest's confirmed flag. It is reachable without
// authentication from the public invitation page: guests self-report, their
// identity is not verified.
func (s *GuestService) SetConfirmation(ctx context.Context, guestID uuid.UUID, confirmed bool) bool {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestService.SetConfirmation")
	defer span.End()

	if err := s.store.SetGuestConfirmation(ctx, guestID, confirmed); err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "could not update confirmation", "error", err, "guest", guestID)
		return false
	}
	return true
}

// Remove deletes a guest on behalf of the invitation owner. The ownership
// check is part of the store's delete filter.
func (s *GuestService) Remove(ctx context.Context, guestID, ownerID uuid.UUID) bool {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GuestService.Remove")
	defer span.End()

	if err := s.store.DeleteGuest(ctx, guestID, ownerID); err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "could not delete guest", "error", err, "guest", guestID, "user", ownerID)
		return false
	}
	return true
}

func normalizeInput(invitationID uuid.UUID, input model.GuestInput) (*model.Guest, bool) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, false
	}
	passes := input.Passes
	if passes < 1 {
		passes = 1
	}
	return &model.Guest{
		InvitationID: invitationID,
		Name:         name,
		Phone:        strings.TrimSpace(input.Phone),
		Passes:       passes,
		Confirmed:    false,
	}, true
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/parser/form"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/parser/guestlist"
)

// AddGuest attaches one guest to a saved invitation from the editor's guest
// section.
func (h *Handler) AddGuest(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.AddGuest")
	defer span.End()

	inv, ok := h.ownedInvitation(ctx, c)
	if !ok {
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		span.RecordError(err)
		c.String(http.StatusBadRequest, "could not parse form")
		return
	}
	var input model.GuestInput
	if err := form.Unmarshal(c.Request.PostForm, &input); err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "could not parse guest", "error", err)
		c.String(http.StatusBadRequest, "could not parse guest")
		return
	}

	guest := h.opts.Guests.Add(ctx, inv.ID, input)
	if guest == nil {
		c.Status(http.StatusBadRequest)
		h.renderToast(c, false, "Invitados", "El nombre es obligatorio")
		return
	}

	h.renderGuestSection(ctx, c, inv)
}

// ImportGuests bulk-loads the pasted name,phone,passes lines. Malformed
// lines are skipped, not reported, matching what the parser promises.
func (h *Handler) ImportGuests(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.ImportGuests")
	defer span.End()

	inv, ok := h.ownedInvitation(ctx, c)
	if !ok {
		return
	}

	inputs := guestlist.Parse(c.PostForm("guest_list"))
	n := h.opts.Guests.BulkImport(ctx, inv.ID, inputs)
	h.logger.InfoContext(ctx, "imported guests", "count", n, "invitation", inv.ID)

	h.renderGuestSection(ctx, c, inv)
}

func (h *Handler) RemoveGuest(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.RemoveGuest")
	defer span.End()

	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	guestID, err := uuid.Parse(c.Param("guestid"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid guest id")
		return
	}

	if !h.opts.Guests.Remove(ctx, guestID, userID) {
		c.String(http.StatusNotFound, "guest not found")
		return
	}
	c.Status(http.StatusOK)
}

// ownedInvitation resolves the posted public id to an invitation owned by
// the session user, writing the error response itself when that fails.
func (h *Handler) ownedInvitation(ctx context.Context, c *gin.Context) (*model.Invitation, bool) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return nil, false
	}

	inv, err := h.opts.Invitations.GetByPublicID(ctx, c.PostForm("public_id"))
	if err != nil {
		c.String(http.StatusInternalServerError, "could not read invitation")
		return nil, false
	}
	if inv == nil || inv.UserID != userID {
		c.String(http.StatusNotFound, "invitation not found")
		return nil, false
	}
	return inv, true
}

func (h *Handler) renderGuestSection(ctx context.Context, c *gin.Context, inv *model.Invitation) {
	h.renderFragment(c, "ADMIN_GUESTS", gin.H{
		"publicID": inv.PublicID,
		"guests":   h.opts.Guests.ListForInvitation(ctx, inv.ID),
	}, "admin.guests.html")
}

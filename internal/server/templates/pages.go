// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/storage"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/theme"
)

func (h *Handler) RenderLanding(c *gin.Context) {
	err := h.tmplLanding.Execute(c.Writer, gin.H{
		"palette": theme.Default(),
		"title":   "Enchanted Wedding Scrolls",
		"sample":  model.DefaultWeddingData(),
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "unable to render landing page", "error", err)
	}
}

func (h *Handler) RenderDashboard(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.RenderDashboard")
	defer span.End()

	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	user, err := h.opts.Users.GetUserByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "could not read user", "error", err, "user", userID)
		c.String(http.StatusInternalServerError, "could not read account")
		return
	}

	invs := h.opts.Invitations.ListForUser(ctx, userID)

	err = h.tmplDashboard.Execute(c.Writer, gin.H{
		"palette":     theme.Default(),
		"title":       "Mis invitaciones",
		"user":        user,
		"invitations": invs,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "unable to render dashboard", "error", err)
	}
}

func (h *Handler) DeleteInvitation(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.DeleteInvitation")
	defer span.End()

	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	inv, err := h.opts.Invitations.GetByPublicID(ctx, c.Param("publicid"))
	if err != nil {
		c.String(http.StatusInternalServerError, "could not read invitation")
		return
	}
	if inv == nil || !h.opts.Invitations.Delete(ctx, inv.ID, userID) {
		c.String(http.StatusNotFound, "invitation not found")
		return
	}

	// htmx removes the row on an empty 200.
	c.Status(http.StatusOK)
}

func (h *Handler) RenderInvitation(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.RenderInvitation")
	defer span.End()

	inv, err := h.opts.Invitations.GetByPublicID(ctx, c.Param("publicid"))
	if err != nil {
		c.String(http.StatusInternalServerError, "could not read invitation")
		return
	}
	if inv == nil {
		h.RenderNotFound(c)
		return
	}

	guests := h.opts.Guests.ListForInvitation(ctx, inv.ID)

	err = h.tmplInvitation.Execute(c.Writer, gin.H{
		"palette":  theme.Resolve(c.Request.URL.Path, inv.Data.ThemeColors),
		"title":    inv.Data.BrideFirstName + " & " + inv.Data.GroomFirstName,
		"publicID": inv.PublicID,
		"data":     inv.Data,
		"guests":   guests,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "unable to render invitation", "error", err, "public-id", inv.PublicID)
	}
}

// ConfirmAttendance flips one guest's confirmation from the public page.
// Guests self-report, the only check is that the guest belongs to the
// invitation named in the link.
func (h *Handler) ConfirmAttendance(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.ConfirmAttendance")
	defer span.End()

	inv, err := h.opts.Invitations.GetByPublicID(ctx, c.Param("publicid"))
	if err != nil {
		c.String(http.StatusInternalServerError, "could not read invitation")
		return
	}
	if inv == nil {
		c.String(http.StatusNotFound, "invitation not found")
		return
	}

	guestID, err := uuid.Parse(c.Param("guestid"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid guest id")
		return
	}

	var guest *model.Guest
	for _, g := range h.opts.Guests.ListForInvitation(ctx, inv.ID) {
		if g.ID == guestID {
			guest = g
			break
		}
	}
	if guest == nil {
		c.String(http.StatusNotFound, "guest not found")
		return
	}

	confirmed := c.PostForm("confirmed") == "true" || c.PostForm("confirmed") == "on"
	if !h.opts.Guests.SetConfirmation(ctx, guest.ID, confirmed) {
		c.String(http.StatusInternalServerError, "could not update confirmation")
		return
	}
	guest.Confirmed = confirmed

	h.renderFragment(c, "INVITATION_CONFIRM_ROW", gin.H{
		"publicID": inv.PublicID,
		"guest":    guest,
	}, "invitation.confirm.html")
}

// SharePhoto receives a guest's photo from the public page and stores it
// in the same bucket as the owner's uploads. Guest name and message are
// logged, not persisted.
func (h *Handler) SharePhoto(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.SharePhoto")
	defer span.End()

	if h.opts.Uploader == nil {
		c.String(http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	inv, err := h.opts.Invitations.GetByPublicID(ctx, c.Param("publicid"))
	if err != nil {
		c.String(http.StatusInternalServerError, "could not read invitation")
		return
	}
	if inv == nil {
		c.String(http.StatusNotFound, "invitation not found")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.Status(http.StatusBadRequest)
		h.renderToast(c, false, "Fotos", "El nombre es obligatorio")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.Status(http.StatusBadRequest)
		h.renderToast(c, false, "Fotos", "Falta la imagen")
		return
	}
	src, err := file.Open()
	if err != nil {
		span.RecordError(err)
		c.String(http.StatusBadRequest, "could not read image")
		return
	}
	defer src.Close()

	url, err := h.opts.Uploader.Upload(ctx, file.Filename, file.Size, src)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			h.renderToast(c, false, "Fotos", "La imagen supera los 5 MB")
			return
		}
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "could not store shared photo", "error", err, "public-id", inv.PublicID)
		c.String(http.StatusInternalServerError, "could not store photo")
		return
	}

	h.logger.InfoContext(ctx, "guest shared a photo",
		"public-id", inv.PublicID, "guest-name", name,
		"message", c.PostForm("message"), "url", url)

	h.renderFragment(c, "INVITATION_PHOTOSHARE_DONE", gin.H{}, "invitation.photoshare.html")
}

func (h *Handler) RenderNotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
	err := h.tmplNotFound.Execute(c.Writer, gin.H{
		"palette": theme.Default(),
		"title":   "Página no encontrada",
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "unable to render not-found page", "error", err)
	}
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/form"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/storage"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/theme"
)

// RenderEditor shows the invitation editor. With ?id=<publicid> it reseeds
// the draft from that invitation, without it the last draft (or a fresh
// default) is picked up where the user left off.
func (h *Handler) RenderEditor(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.RenderEditor")
	defer span.End()

	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	publicID := c.Query("id")
	data := h.loadDraft(ctx, userID)

	if publicID != "" {
		inv, err := h.opts.Invitations.GetByPublicID(ctx, publicID)
		if err != nil {
			c.String(http.StatusInternalServerError, "could not read invitation")
			return
		}
		if inv == nil || inv.UserID != userID {
			h.RenderNotFound(c)
			return
		}
		data = inv.Data.Clone()
		if err := h.opts.Drafts.PutDraft(ctx, userID, data); err != nil {
			span.RecordError(err)
			h.logger.WarnContext(ctx, "could not seed draft", "error", err, "user", userID)
		}
	}

	tmplData := gin.H{
		"palette":  theme.Default(),
		"title":    "Editor de invitación",
		"publicID": publicID,
		"data":     data,
		"presets":  theme.Presets(),
	}
	if publicID != "" {
		if inv, err := h.opts.Invitations.GetByPublicID(ctx, publicID); err == nil && inv != nil {
			tmplData["guests"] = h.opts.Guests.ListForInvitation(ctx, inv.ID)
		}
	}

	if err := h.tmplAdmin.Execute(c.Writer, tmplData); err != nil {
		h.logger.ErrorContext(ctx, "unable to render editor", "error", err)
	}
}

// SaveInvitation publishes the draft. Without a public id a new invitation
// is minted, with one the existing invitation is overwritten in place.
func (h *Handler) SaveInvitation(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.SaveInvitation")
	defer span.End()

	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	data := h.loadDraft(ctx, userID)
	publicID := c.PostForm("public_id")

	if publicID == "" {
		inv := h.opts.Invitations.Create(ctx, data, userID)
		if inv == nil {
			c.String(http.StatusInternalServerError, "could not create invitation")
			return
		}
		if err := h.opts.Drafts.DeleteDraft(ctx, userID); err != nil {
			h.logger.WarnContext(ctx, "could not clear draft", "error", err, "user", userID)
		}
		redirect(c, "/admin?id="+inv.PublicID)
		return
	}

	inv, err := h.opts.Invitations.GetByPublicID(ctx, publicID)
	if err != nil {
		c.String(http.StatusInternalServerError, "could not read invitation")
		return
	}
	if inv == nil || !h.opts.Invitations.Update(ctx, inv.ID, data, userID) {
		c.String(http.StatusNotFound, "invitation not found")
		return
	}

	h.renderToast(c, true, "Guardado", "La invitación fue actualizada")
}

// ResetEditor throws the draft away. The follow-up GET reseeds it, either
// from the invitation being edited or from the defaults.
func (h *Handler) ResetEditor(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Handler.ResetEditor")
	defer span.End()

	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	if err := h.opts.Drafts.DeleteDraft(ctx, userID); err != nil {
		span.RecordError(err)
		h.logger.WarnContext(ctx, "could not clear draft", "error", err, "user", userID)
	}

	target := "/admin"
	if publicID := c.PostForm("public_id"); publicID != "" {
		target += "?id=" + publicID
	}
	redirect(c, target)
}

func (h *Handler) SetField(c *gin.Context) {
	field, value := c.PostForm("field"), c.PostForm("value")
	data := h.withEditor(c, "Handler.SetField", func(ed *form.Editor) {
		switch parts := splitPath(field); len(parts) {
		case 1:
			ed.SetField(parts[0], value)
		case 2:
			ed.SetNestedField(parts[0], parts[1], value)
		case 3:
			ed.SetDeepNestedField(parts[0], parts[1], parts[2], value)
		}
	})
	if data != nil {
		c.Status(http.StatusNoContent)
	}
}

func (h *Handler) SetDate(c *gin.Context) {
	value := c.PostForm("value")
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t, _ = time.Parse("2006-01-02", value)
	}
	// A zero time reaches the editor, which treats it as "leave unchanged".
	data := h.withEditor(c, "Handler.SetDate", func(ed *form.Editor) {
		ed.SetDate(t)
	})
	if data != nil {
		c.Status(http.StatusNoContent)
	}
}

func (h *Handler) SetColor(c *gin.Context) {
	key, value := c.PostForm("key"), c.PostForm("value")
	data := h.withEditor(c, "Handler.SetColor", func(ed *form.Editor) {
		ed.SetColor(key, value)
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_THEME", gin.H{"data": data, "presets": theme.Presets()}, "admin.theme.html")
	}
}

func (h *Handler) ApplyPreset(c *gin.Context) {
	preset, ok := theme.PresetByName(c.PostForm("preset"))
	if !ok {
		c.String(http.StatusBadRequest, "unknown preset")
		return
	}
	data := h.withEditor(c, "Handler.ApplyPreset", func(ed *form.Editor) {
		ed.ApplyPreset(preset.Colors)
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_THEME", gin.H{"data": data, "presets": theme.Presets()}, "admin.theme.html")
	}
}

func (h *Handler) AddGalleryImage(c *gin.Context) {
	data := h.withEditor(c, "Handler.AddGalleryImage", func(ed *form.Editor) {
		ed.AddGalleryImage()
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_GALLERY", gin.H{"data": data}, "admin.gallery.html")
	}
}

func (h *Handler) ChangeGalleryImage(c *gin.Context) {
	i := index(c)
	value := c.PostForm("value")
	data := h.withEditor(c, "Handler.ChangeGalleryImage", func(ed *form.Editor) {
		ed.ChangeGalleryImage(i, value)
	})
	if data != nil {
		c.Status(http.StatusNoContent)
	}
}

func (h *Handler) RemoveGalleryImage(c *gin.Context) {
	i := index(c)
	data := h.withEditor(c, "Handler.RemoveGalleryImage", func(ed *form.Editor) {
		ed.RemoveGalleryImage(i)
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_GALLERY", gin.H{"data": data}, "admin.gallery.html")
	}
}

func (h *Handler) AddDressCodeItem(c *gin.Context) {
	list, ok := dressCodeList(c)
	if !ok {
		return
	}
	data := h.withEditor(c, "Handler.AddDressCodeItem", func(ed *form.Editor) {
		ed.AddDressCodeItem(list)
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_DRESSCODE", gin.H{"data": data}, "admin.dresscode.html")
	}
}

func (h *Handler) ChangeDressCodeItem(c *gin.Context) {
	list, ok := dressCodeList(c)
	if !ok {
		return
	}
	i := index(c)
	value := c.PostForm("value")
	data := h.withEditor(c, "Handler.ChangeDressCodeItem", func(ed *form.Editor) {
		ed.ChangeDressCodeItem(list, i, value)
	})
	if data != nil {
		c.Status(http.StatusNoContent)
	}
}

func (h *Handler) RemoveDressCodeItem(c *gin.Context) {
	list, ok := dressCodeList(c)
	if !ok {
		return
	}
	i := index(c)
	data := h.withEditor(c, "Handler.RemoveDressCodeItem", func(ed *form.Editor) {
		ed.RemoveDressCodeItem(list, i)
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_DRESSCODE", gin.H{"data": data}, "admin.dresscode.html")
	}
}

func (h *Handler) AddGiftRegistry(c *gin.Context) {
	data := h.withEditor(c, "Handler.AddGiftRegistry", func(ed *form.Editor) {
		ed.AddGiftRegistry()
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_REGISTRIES", gin.H{"data": data}, "admin.registries.html")
	}
}

func (h *Handler) ChangeGiftRegistry(c *gin.Context) {
	i := index(c)
	field, value := c.PostForm("field"), c.PostForm("value")
	data := h.withEditor(c, "Handler.ChangeGiftRegistry", func(ed *form.Editor) {
		ed.ChangeGiftRegistry(i, field, value)
	})
	if data != nil {
		c.Status(http.StatusNoContent)
	}
}

func (h *Handler) RemoveGiftRegistry(c *gin.Context) {
	i := index(c)
	data := h.withEditor(c, "Handler.RemoveGiftRegistry", func(ed *form.Editor) {
		ed.RemoveGiftRegistry(i)
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_REGISTRIES", gin.H{"data": data}, "admin.registries.html")
	}
}

func (h *Handler) AddWishlistItem(c *gin.Context) {
	data := h.withEditor(c, "Handler.AddWishlistItem", func(ed *form.Editor) {
		ed.AddWishlistItem()
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_WISHLIST", gin.H{"data": data}, "admin.wishlist.html")
	}
}

func (h *Handler) ChangeWishlistItem(c *gin.Context) {
	i := index(c)
	value := c.PostForm("value")
	data := h.withEditor(c, "Handler.ChangeWishlistItem", func(ed *form.Editor) {
		ed.ChangeWishlistItem(i, value)
	})
	if data != nil {
		c.Status(http.StatusNoContent)
	}
}

func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	i := index(c)
	data := h.withEditor(c, "Handler.RemoveWishlistItem", func(ed *form.Editor) {
		ed.RemoveWishlistItem(i)
	})
	if data != nil {
		h.renderFragment(c, "ADMIN_WISHLIST", gin.H{"data": data}, "admin.wishlist.html")
	}
}

// UploadImage pushes one image to the object store and writes its public
// URL into the draft field named in the form.
func (h *Handler) UploadImage(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.UploadImage")
	defer span.End()

	if h.opts.Uploader == nil {
		c.String(http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.String(http.StatusBadRequest, "missing image")
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
			h.renderToast(c, false, "Subida", "La imagen supera los 5 MB")
			return
		}
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "could not upload image", "error", err)
		c.String(http.StatusInternalServerError, "could not upload image")
		return
	}

	field := c.PostForm("field")
	if field == "gallery" {
		data := h.withEditor(c, "Handler.UploadImage.gallery", func(ed *form.Editor) {
			ed.AddGalleryImage()
			ed.ChangeGalleryImage(len(ed.Data().GalleryImages)-1, url)
		})
		if data != nil {
			h.renderFragment(c, "ADMIN_GALLERY", gin.H{"data": data}, "admin.gallery.html")
		}
		return
	}

	if field != "" {
		data := h.withEditor(c, "Handler.UploadImage.field", func(ed *form.Editor) {
			switch parts := splitPath(field); len(parts) {
			case 1:
				ed.SetField(parts[0], url)
			case 2:
				ed.SetNestedField(parts[0], parts[1], url)
			}
		})
		if data == nil {
			return
		}
	}

	c.String(http.StatusOK, url)
}

func index(c *gin.Context) int {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return -1
	}
	return i
}

func dressCodeList(c *gin.Context) (form.DressCodeList, bool) {
	switch list := form.DressCodeList(c.Param("list")); list {
	case form.FormalWear, form.AvoidColors:
		return list, true
	default:
		c.String(http.StatusBadRequest, "unknown dress code list")
		return "", false
	}
}

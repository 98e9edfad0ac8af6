// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	txttemplate "text/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/form"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/service"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/storage"
)

//go:embed *.html
var templates embed.FS

// ContextUserID is the gin context key under which the session middleware
// stores the authenticated uuid.UUID.
const ContextUserID = "session-user-id"

var funcs = template.FuncMap{
	"formatDate": formatDate,
	"daysUntil":  daysUntil,
	"inc":        func(i int) int { return i + 1 },
	// dict lets a nested template receive more than one value, e.g. the
	// invitation's public id next to the guest being rendered.
	"dict": func(pairs ...any) map[string]any {
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			if k, ok := pairs[i].(string); ok {
				m[k] = pairs[i+1]
			}
		}
		return m
	},
}

type HandlerOptions struct {
	Invitations     *service.InvitationService
	Guests          *service.GuestService
	Users           db.UserStore
	Drafts          db.DraftStore
	Uploader        *storage.Uploader
	JWTSecret       []byte
	SessionCookie   string
	SessionValidity time.Duration
}

func NewHandler(opts HandlerOptions) *Handler {
	coreTemplates := []string{"main.html", "main.style.html", "footer.html"}
	adminTemplates := []string{
		"admin.html",
		"admin.details.html",
		"admin.gallery.html",
		"admin.dresscode.html",
		"admin.registries.html",
		"admin.wishlist.html",
		"admin.theme.html",
		"admin.guests.html",
	}
	invitationTemplates := []string{
		"invitation.html",
		"invitation.hero.html",
		"invitation.details.html",
		"invitation.gallery.html",
		"invitation.dresscode.html",
		"invitation.tips.html",
		"invitation.gifts.html",
		"invitation.photoshare.html",
		"invitation.confirm.html",
	}

	return &Handler{
		tmplLanding:   template.Must(template.New("main.html").Funcs(funcs).ParseFS(templates, append(coreTemplates, "landing.html")...)),
		tmplAuth:      template.Must(template.New("main.html").Funcs(funcs).ParseFS(templates, append(coreTemplates, "auth.html")...)),
		tmplDashboard: template.Must(template.New("main.html").Funcs(funcs).ParseFS(templates, append(coreTemplates, "dashboard.html")...)),
		tmplAdmin:     template.Must(template.New("main.html").Funcs(funcs).ParseFS(templates, append(coreTemplates, adminTemplates...)...)),
		// NOTE: workaround to allow the owner's embed markup inside the map
		// section, the public page renders owner-authored iframes verbatim.
		tmplInvitation: txttemplate.Must(txttemplate.New("main.html").Funcs(txttemplate.FuncMap(funcs)).ParseFS(templates, append(coreTemplates, invitationTemplates...)...)),
		tmplNotFound:   template.Must(template.New("main.html").Funcs(funcs).ParseFS(templates, append(coreTemplates, "notfound.html")...)),
		opts:           opts,
		logger:         slog.Default().WithGroup("http"),
	}
}

type Handler struct {
	tmplLanding    *template.Template
	tmplAuth       *template.Template
	tmplDashboard  *template.Template
	tmplAdmin      *template.Template
	tmplInvitation *txttemplate.Template
	tmplNotFound   *template.Template
	opts           HandlerOptions
	logger         *slog.Logger
}

// sessionUserID reads the uuid the middleware stored on the context.
func sessionUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// loadDraft returns the user's cached draft, or a fresh default when no
// draft exists. Cache failures degrade to the default as well.
func (h *Handler) loadDraft(ctx context.Context, userID uuid.UUID) *model.WeddingData {
	data, err := h.opts.Drafts.GetDraft(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.logger.WarnContext(ctx, "could not read draft", "error", err, "user", userID)
		}
		return model.DefaultWeddingData()
	}
	return data
}

// withEditor runs one editor mutation against the user's draft and writes
// the result back. Returns nil when the draft could not be persisted.
func (h *Handler) withEditor(c *gin.Context, op string, apply func(ed *form.Editor)) *model.WeddingData {
	ctx, span := tracer.Start(c.Request.Context(), op)
	defer span.End()

	userID, ok := sessionUserID(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return nil
	}

	ed := form.NewEditor(h.loadDraft(ctx, userID))
	apply(ed)

	data := ed.Data()
	if err := h.opts.Drafts.PutDraft(ctx, userID, data); err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "could not store draft", "error", err, "user", userID)
		c.String(http.StatusInternalServerError, "could not store draft")
		return nil
	}
	return data
}

// renderFragment executes one named block from the given template files,
// used for the htmx partial responses.
func (h *Handler) renderFragment(c *gin.Context, block string, data any, files ...string) {
	wrapperTemplate, err := template.New("wrapper").Funcs(funcs).Parse(fmt.Sprintf("{{ template %q . }}", block))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "unable to parse fragment wrapper", "error", err, "block", block)
		c.Status(http.StatusInternalServerError)
		return
	}
	t, err := wrapperTemplate.ParseFS(templates, files...)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "unable to parse fragment", "error", err, "block", block)
		c.Status(http.StatusInternalServerError)
		return
	}
	if err := t.Execute(c.Writer, data); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "unable to execute fragment", "error", err, "block", block)
	}
}

func (h *Handler) renderToast(c *gin.Context, success bool, title, message string) {
	file := "toast.success.html"
	block := "TOAST_SUCCESS"
	if !success {
		file = "toast.error.html"
		block = "TOAST_ERROR"
	}
	h.renderFragment(c, block, gin.H{"Title": title, "Message": message}, file)
}

// formatDate renders the wedding date the way the invitations spell it,
// e.g. "15 de mayo de 2025".
func formatDate(t time.Time) string {
	months := []string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

func daysUntil(t time.Time) int {
	d := int(time.Until(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// splitPath breaks a dotted form field name ("ceremony_location.address")
// into its segments.
func splitPath(field string) []string {
	return strings.Split(strings.TrimSpace(field), ".")
}

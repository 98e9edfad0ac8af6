// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/auth"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/theme"
)

func (h *Handler) RenderAuth(c *gin.Context) {
	err := h.tmplAuth.Execute(c.Writer, gin.H{
		"palette": theme.Default(),
		"title":   "Iniciar sesión",
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "unable to render auth page", "error", err)
	}
}

func (h *Handler) SignUp(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.SignUp")
	defer span.End()

	email := strings.TrimSpace(strings.ToLower(c.PostForm("email")))
	password := c.PostForm("password")
	displayName := strings.TrimSpace(c.PostForm("display_name"))

	if _, err := mail.ParseAddress(email); err != nil {
		c.String(http.StatusBadRequest, "invalid email address")
		return
	}
	if len(password) < 8 {
		c.String(http.StatusBadRequest, "password must have at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "could not hash password", "error", err)
		c.String(http.StatusInternalServerError, "could not create account")
		return
	}

	user := &model.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}
	if err := h.opts.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			c.Status(http.StatusConflict)
			h.renderToast(c, false, "Registro", "Ese correo ya está registrado")
			return
		}
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "could not create user", "error", err)
		c.String(http.StatusInternalServerError, "could not create account")
		return
	}

	h.startSession(c, user)
}

func (h *Handler) SignIn(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Handler.SignIn")
	defer span.End()

	email := strings.TrimSpace(strings.ToLower(c.PostForm("email")))
	password := c.PostForm("password")

	user, err := h.opts.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			span.RecordError(err)
			h.logger.ErrorContext(ctx, "could not read user", "error", err)
		}
		// Unknown email and wrong password answer identically.
		c.Status(http.StatusUnauthorized)
		h.renderToast(c, false, "Iniciar sesión", "Correo o contraseña incorrectos")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		c.Status(http.StatusUnauthorized)
		h.renderToast(c, false, "Iniciar sesión", "Correo o contraseña incorrectos")
		return
	}

	h.startSession(c, user)
}

func (h *Handler) SignOut(c *gin.Context) {
	c.SetCookie(h.opts.SessionCookie, "", -1, "/", "", false, true)
	redirect(c, "/")
}

func (h *Handler) startSession(c *gin.Context, user *model.User) {
	ctx := c.Request.Context()

	token, err := auth.GenerateToken(user.ID, h.opts.JWTSecret, h.opts.SessionValidity)
	if err != nil {
		h.logger.ErrorContext(ctx, "could not issue session token", "error", err)
		c.String(http.StatusInternalServerError, "could not sign in")
		return
	}
	c.SetCookie(h.opts.SessionCookie, token, int(h.opts.SessionValidity.Seconds()), "/", "", false, true)
	redirect(c, "/dashboard")
}

// redirect answers htmx requests with an Hx-Redirect header and plain form
// posts with a 303.
func redirect(c *gin.Context, target string) {
	if c.Request.Header.Get("Hx-Request") == "true" {
		c.Header("Hx-Redirect", target)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package server

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/auth"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/server/templates"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/service"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/storage"
)

//go:embed all:static
var staticFS embed.FS

const (
	sessionCookie   = "session"
	sessionValidity = 7 * 24 * time.Hour
)

func NewServer(
	serviceName string,
	staticDir string,
	jwtSecret []byte,
	invitations *service.InvitationService,
	guests *service.GuestService,
	uStore db.UserStore,
	dStore db.DraftStore,
	uploader *storage.Uploader,
) *Server {
	return &Server{
		logger:      slog.Default().WithGroup("http"),
		serviceName: serviceName,
		staticDir:   staticDir,
		jwtSecret:   jwtSecret,
		handler: templates.NewHandler(templates.HandlerOptions{
			Invitations:     invitations,
			Guests:          guests,
			Users:           uStore,
			Drafts:          dStore,
			Uploader:        uploader,
			JWTSecret:       jwtSecret,
			SessionCookie:   sessionCookie,
			SessionValidity: sessionValidity,
		}),
	}
}

type Server struct {
	serviceName string
	staticDir   string
	jwtSecret   []byte
	logger      *slog.Logger
	handler     *templates.Handler
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := gin.New()
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	middlewares := []gin.HandlerFunc{
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
	}
	mux.Use(middlewares...)

	var staticDir fs.FS
	var err error
	switch {
	case s.staticDir != "":
		staticDir = os.DirFS(s.staticDir)
	default:
		staticDir, err = fs.Sub(staticFS, "static")
		if err != nil {
			panic(err)
		}
	}
	mux.StaticFS("/static", http.FS(staticDir))

	mux.GET("/", s.handler.RenderLanding)
	mux.GET("/auth", s.handler.RenderAuth)
	mux.POST("/auth/signup", s.handler.SignUp)
	mux.POST("/auth/signin", s.handler.SignIn)
	mux.POST("/auth/signout", s.handler.SignOut)

	// The invitation page is public by design, guests hold nothing but the
	// link. Confirmation toggles are keyed by guest id inside that page.
	mux.GET("/invitation/:publicid", s.handler.RenderInvitation)
	mux.POST("/invitation/:publicid/guests/:guestid/confirmation", s.handler.ConfirmAttendance)
	mux.POST("/invitation/:publicid/photos", s.handler.SharePhoto)

	authed := mux.Group("/", requireSession(s.jwtSecret))
	authed.GET("/dashboard", s.handler.RenderDashboard)
	authed.POST("/dashboard/invitations/:publicid/delete", s.handler.DeleteInvitation)

	authed.GET("/admin", s.handler.RenderEditor)
	authed.POST("/admin/save", s.handler.SaveInvitation)
	authed.POST("/admin/reset", s.handler.ResetEditor)
	authed.POST("/admin/upload", s.handler.UploadImage)

	// One fragment endpoint per editor control.
	authed.POST("/admin/field", s.handler.SetField)
	authed.POST("/admin/date", s.handler.SetDate)
	authed.POST("/admin/color", s.handler.SetColor)
	authed.POST("/admin/preset", s.handler.ApplyPreset)
	authed.POST("/admin/gallery", s.handler.AddGalleryImage)
	authed.POST("/admin/gallery/:index", s.handler.ChangeGalleryImage)
	authed.DELETE("/admin/gallery/:index", s.handler.RemoveGalleryImage)
	authed.POST("/admin/dresscode/:list", s.handler.AddDressCodeItem)
	authed.POST("/admin/dresscode/:list/:index", s.handler.ChangeDressCodeItem)
	authed.DELETE("/admin/dresscode/:list/:index", s.handler.RemoveDressCodeItem)
	authed.POST("/admin/registries", s.handler.AddGiftRegistry)
	authed.POST("/admin/registries/:index", s.handler.ChangeGiftRegistry)
	authed.DELETE("/admin/registries/:index", s.handler.RemoveGiftRegistry)
	authed.POST("/admin/wishlist", s.handler.AddWishlistItem)
	authed.POST("/admin/wishlist/:index", s.handler.ChangeWishlistItem)
	authed.DELETE("/admin/wishlist/:index", s.handler.RemoveWishlistItem)

	authed.POST("/admin/guests", s.handler.AddGuest)
	authed.POST("/admin/guests/import", s.handler.ImportGuests)
	authed.DELETE("/admin/guests/:guestid", s.handler.RemoveGuest)

	mux.NoRoute(s.handler.RenderNotFound)

	mux.ServeHTTP(w, r)
}

// requireSession resolves the session cookie into a user id and stores it in
// the request context. Plain page requests are bounced to the sign-in page,
// fragment requests get a bare 401.
func requireSession(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var span trace.Span
		ctx := c.Request.Context()
		_, span = tracer.Start(ctx, "Middleware.requireSession")
		defer span.End()

		token, err := c.Cookie(sessionCookie)
		if err != nil {
			unauthenticated(c)
			return
		}
		userID, err := auth.UserIDFromToken(token, secret)
		if err != nil {
			span.RecordError(err)
			unauthenticated(c)
			return
		}
		c.Set(templates.ContextUserID, userID)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	if c.Request.Method == http.MethodGet && c.Request.Header.Get("Hx-Request") != "true" {
		c.Redirect(http.StatusSeeOther, "/auth")
	} else {
		c.Status(http.StatusUnauthorized)
	}
	c.Abort()
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/theme"
)

func TestInvitationPageRendersAllSections(t *testing.T) {
	h := NewHandler(HandlerOptions{})

	var buf bytes.Buffer
	err := h.tmplInvitation.Execute(&buf, gin.H{
		"palette":  theme.Default(),
		"title":    "Elena & Jorge",
		"publicID": "V1StGXR8_Z",
		"data":     model.DefaultWeddingData(),
		"guests":   []*model.Guest{},
	})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{
		"Recomendaciones",
		"Comparte tus Fotos",
		"Código de vestimenta",
		"Confirma tu asistencia",
		"/invitation/V1StGXR8_Z/photos",
	} {
		require.Contains(t, out, want)
	}
}

func TestRenderToastFragment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(HandlerOptions{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/save", nil)

	h.renderToast(c, true, "Guardado", "La invitación fue guardada")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "La invitación fue guardada")
}

func TestSharePhotoWithoutUploader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(HandlerOptions{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/invitation/V1StGXR8_Z/photos", nil)

	h.SharePhoto(c)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

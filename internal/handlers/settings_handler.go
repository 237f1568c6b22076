package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

type SettingsHandler struct {
	settings SiteSettings
	logger   *logrus.Entry
}

func NewSettingsHandler(settings SiteSettings, log logrus.FieldLogger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger.Component(log, "handlers.settings"),
	}
}

// GET /v1/admin/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PATCH /v1/admin/settings
// Solo se reemplazan las secciones presentes en el body.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var update models.SettingsUpdate
	if !bindJSON(c, &update) {
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), &update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithField("admin", c.GetString("admin_email")).Info("settings changed")
	c.JSON(http.StatusOK, settings)
}

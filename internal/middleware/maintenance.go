package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/models"
)

// SettingsReader es lo que el modo mantenimiento necesita leer
type SettingsReader interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
}

// Maintenance responde 503 en la tienda mientras el modo mantenimiento esté activo,
// salvo para las IPs permitidas. Si la configuración no se puede leer, deja pasar.
func Maintenance(settings SettingsReader, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := settings.Get(c.Request.Context())
		if err != nil {
			log.WithError(err).Warn("could not read maintenance settings")
			c.Next()
			return
		}

		m := current.Maintenance
		if !m.Enabled || ipAllowed(c.ClientIP(), m.AllowedIPs) {
			c.Next()
			return
		}

		c.Header("Retry-After", "300")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":   m.Message,
			"code":    "MAINTENANCE",
			"message": m.Message,
		})
	}
}

func ipAllowed(ip string, allowed []string) bool {
	client := net.ParseIP(ip)
	if client == nil {
		return false
	}
	for _, a := range allowed {
		if client.Equal(net.ParseIP(a)) {
			return true
		}
	}
	return false
}

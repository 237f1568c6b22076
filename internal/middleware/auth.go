package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const (
	AdminEmailKey = "admin_email"
	AdminUIDKey   = "admin_uid"
)

// TokenVerifier verifica el ID token del proveedor de identidad. *auth.Client lo implementa.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// NewFirebaseVerifier crea el cliente de Auth de Firebase.
// Sin archivo de credenciales usa las credenciales por defecto del entorno.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*auth.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}
	return client, nil
}

// AuthOptions configura el acceso al admin
type AuthOptions struct {
	// AllowedEmails restringe el admin a estos correos; vacío acepta cualquier usuario autenticado
	AllowedEmails []string
	// Disabled deja pasar todo, solo para desarrollo local
	Disabled bool
}

// AdminAuth exige un Bearer token válido y, si hay lista, un correo permitido
func AdminAuth(verifier TokenVerifier, opts AuthOptions, log logrus.FieldLogger) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(opts.AllowedEmails))
	for _, e := range opts.AllowedEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allowed[e] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if opts.Disabled {
			c.Set(AdminEmailKey, "dev@localhost")
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		idToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || idToken == "" || idToken == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		if verifier == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "authentication is not configured",
				"code":  "AUTH_UNAVAILABLE",
			})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			log.WithError(err).WithField("request_id", c.GetString(RequestIDKey)).Warn("invalid admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		email, _ := token.Claims["email"].(string)
		email = strings.ToLower(email)
		if len(allowed) > 0 {
			if _, ok := allowed[email]; !ok {
				log.WithFields(logrus.Fields{"uid": token.UID, "email": email}).Warn("admin access denied")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "account is not allowed to manage the store",
					"code":  "FORBIDDEN",
				})
				return
			}
		}

		c.Set(AdminUIDKey, token.UID)
		c.Set(AdminEmailKey, email)
		c.Next()
	}
}

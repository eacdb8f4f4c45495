// Package auth gates requests behind a single shared bearer token.
//
// When no token is configured the guard allows everything; that mode exists
// for deployments that predate TOOL_API_KEY and is announced once at
// startup so it is never a silent default.
package auth

import (
	"log/slog"
	"strings"

	"github.com/dante4567/openwebui-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Guard validates the Authorization header. Zero value is unusable; build
// one with NewGuard.
type Guard struct {
	enabled bool
	token   string
}

// NewGuard creates a Guard. An empty token disables auth.
func NewGuard(token string, log *slog.Logger) *Guard {
	if log == nil {
		log = slog.Default()
	}
	if token == "" {
		log.Warn("TOOL_API_KEY not set, authentication disabled, all requests allowed")
		return &Guard{enabled: false}
	}
	log.Info("bearer authentication enabled")
	return &Guard{enabled: true, token: token}
}

// Enabled reports whether a token is configured.
func (g *Guard) Enabled() bool { return g.enabled }

// Verify checks a provided token. Empty provided token fails as
// unauthenticated, a mismatch as forbidden.
func (g *Guard) Verify(provided string) error {
	if !g.enabled {
		return nil
	}
	if provided == "" {
		return apperr.Unauthenticated("authorization required")
	}
	if provided != g.token {
		return apperr.Forbidden("invalid API key")
	}
	return nil
}

// Middleware returns a gin handler enforcing the guard. Routes that must
// stay public (liveness, health, docs) are registered outside the group
// this middleware is attached to.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := g.Verify(bearerToken(c.GetHeader("Authorization"))); err != nil {
			c.AbortWithStatusJSON(apperr.HTTPStatus(err), apperr.ResponseBody(err))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	// Accept a bare token too; curl users forget the scheme.
	return strings.TrimSpace(header)
}

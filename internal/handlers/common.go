package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dante4567/openwebui-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
)

// writeError renders the structured error body. Server-side failures are
// logged with full context here; the caller only ever sees the kind and a
// safe message.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		log.Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(),
			"status", status, "error", err)
	}
	c.JSON(status, apperr.ResponseBody(err))
}

// requestContext detaches the upstream call from the client connection:
// if the client disconnects mid-request the in-flight upstream call may
// still complete and warm the cache.
func requestContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// queryBool parses a boolean query parameter with a default.
func queryBool(c *gin.Context, name string, def bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Validation("%s must be true or false", name)
	}
	return v, nil
}

// queryInt parses an integer query parameter, 0 when absent.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("%s must be an integer", name)
	}
	return v, nil
}

// bindJSON wraps gin binding so malformed bodies surface as validation
// errors in the shared taxonomy.
func bindJSON(c *gin.Context, dest any) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

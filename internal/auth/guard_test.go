package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
)

func TestVerifyDisabled(t *testing.T) {
	g := NewGuard("", nil)
	assert.False(t, g.Enabled())

	// Everything passes, including garbage tokens.
	assert.NoError(t, g.Verify(""))
	assert.NoError(t, g.Verify("anything"))
}

func TestVerifyEnabled(t *testing.T) {
	g := NewGuard("secret", nil)
	assert.True(t, g.Enabled())

	assert.NoError(t, g.Verify("secret"))
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(g.Verify("")))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(g.Verify("wrong")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{"disabled allows no header", "", "", http.StatusOK},
		{"disabled allows any header", "", "Bearer junk", http.StatusOK},
		{"enabled rejects missing header", "secret", "", http.StatusUnauthorized},
		{"enabled rejects wrong token", "secret", "Bearer wrong", http.StatusForbidden},
		{"enabled accepts bearer token", "secret", "Bearer secret", http.StatusOK},
		{"enabled accepts bare token", "secret", "secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/tasks", NewGuard(tt.configured, nil).Middleware(), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestBearerTokenParsing(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("Bearer  abc "))
	assert.Equal(t, "abc", bearerToken("abc"))
	assert.Equal(t, "", bearerToken(""))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestFrom(remote string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestClientIP(t *testing.T) {
	t.Run("first forwarded hop wins", func(t *testing.T) {
		c := requestFrom("10.0.0.1:4432", map[string]string{
			"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		})
		assert.Equal(t, "203.0.113.7", clientIP(c))
	})

	t.Run("real ip header is next", func(t *testing.T) {
		c := requestFrom("10.0.0.1:4432", map[string]string{
			"X-Real-IP": "203.0.113.9",
		})
		assert.Equal(t, "203.0.113.9", clientIP(c))
	})

	t.Run("socket address fallback strips the port", func(t *testing.T) {
		c := requestFrom("192.0.2.1:4432", nil)
		assert.Equal(t, "192.0.2.1", clientIP(c))
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return router
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("Generates id when missing", func(t *testing.T) {
		router := setupRequestIDRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/id", nil)
		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("Keeps a valid caller id", func(t *testing.T) {
		router := setupRequestIDRouter()
		callerID := uuid.NewString()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/id", nil)
		req.Header.Set(RequestIDHeader, callerID)
		router.ServeHTTP(w, req)

		assert.Equal(t, callerID, w.Header().Get(RequestIDHeader))
	})

	t.Run("Replaces a malformed caller id", func(t *testing.T) {
		router := setupRequestIDRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/id", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}

package http_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/presence-analyzer/internal/adapters/handler/http"
	"github.com/comitanigiacomo/presence-analyzer/internal/adapters/repository"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/services"
)

const brokenData = `10,2013-09-10,09:39:05,17:59:52
10,2013-09-11,09:19:52,16:07:37
12,2013-09-10,not-a-time,17:00:00
10,2013-09-12,10:48:46,17:23:51
11,2013-09-09,09:12:14,15:54:17
11,2013-09-13,09:00:00
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setupPresenceRouter(t *testing.T, dataPath string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewCSVPresenceRepository(dataPath)
	handler := adapterHTTP.NewPresenceHandler(services.NewStatsService(repo))

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListUsers(t *testing.T) {
	t.Run("Success: 200 with users", func(t *testing.T) {
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/users")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var users []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		require.Len(t, users, 2)
		assert.Equal(t, map[string]any{"user_id": float64(10), "name": "User 10"}, users[0])
	})

	t.Run("Fail: 500 when data file is missing", func(t *testing.T) {
		captureLog(t)
		router := setupPresenceRouter(t, filepath.Join(t.TempDir(), "missing.csv"))

		w := get(router, "/api/v1/users")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "failed to load presence data")
	})
}

func TestMeanTimeWeekday(t *testing.T) {
	t.Run("Success: 200 with seven weekdays", func(t *testing.T) {
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/mean_time_weekday/10")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`[["Mon",0],["Tue",30047.0],["Wed",24465.0],["Thu",23705.0],["Fri",0],["Sat",0],["Sun",0]]`,
			w.Body.String())
	})

	t.Run("Fail: 404 on unknown user logs a diagnostic", func(t *testing.T) {
		logs := captureLog(t)
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/mean_time_weekday/13")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, logs.String(), "user 13")
	})

	t.Run("Fail: 404 on skipped user", func(t *testing.T) {
		captureLog(t)
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/mean_time_weekday/12")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 404 on non numeric id", func(t *testing.T) {
		captureLog(t)
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/mean_time_weekday/abc")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPresenceWeekday(t *testing.T) {
	t.Run("Success: 200 with header and seven weekdays", func(t *testing.T) {
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/presence_weekday/10")

		assert.Equal(t, http.StatusOK, w.Code)

		var rows []any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Len(t, rows, 8)
		assert.JSONEq(t,
			`[["Weekday","Presence (s)"],["Mon",0],["Tue",30047.0],["Wed",24465.0],["Thu",23705.0],["Fri",0],["Sat",0],["Sun",0]]`,
			w.Body.String())
	})

	t.Run("Fail: 404 on unknown user", func(t *testing.T) {
		logs := captureLog(t)
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/presence_weekday/13")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "user not found")
		assert.NotEmpty(t, logs.String())
	})
}

func TestPresenceStartEnd(t *testing.T) {
	t.Run("Success: 200 with mean start and end", func(t *testing.T) {
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/presence_start_end/11")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`[["Mon",33134,57257],["Tue",0,0],["Wed",0,0],["Thu",0,0],["Fri",0,0],["Sat",0,0],["Sun",0,0]]`,
			w.Body.String())
	})

	t.Run("Fail: 404 on unknown user", func(t *testing.T) {
		captureLog(t)
		router := setupPresenceRouter(t, writeFixture(t, brokenData))

		w := get(router, "/api/v1/presence_start_end/13")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

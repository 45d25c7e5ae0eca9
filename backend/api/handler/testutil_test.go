package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"learnnest/backend/common"
	"learnnest/backend/model"
	"learnnest/backend/service"

	"github.com/burugo/thing"
	"github.com/burugo/thing/drivers/db/sqlite"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "test-jwt-secret-key-for-handler-tests"
	common.JWTRefreshSecret = "test-jwt-refresh-secret-key-for-handler-tests"
	// Tests never call common.InitRedisClient, so mirror its no-redis outcome;
	// otherwise the auth middleware dereferences the nil common.RDB client.
	common.RedisEnabled = false
}

// testDBSeq makes each test's in-memory database name unique. The shared-cache
// URI form is required because the adapter pools connections: a plain
// ":memory:" DSN gives every pooled connection its own empty database.
var testDBSeq int64

func testDBDSN() string {
	return fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
}

func setupHandlerTest(t *testing.T) {
	t.Helper()
	dbAdapter, err := sqlite.NewSQLiteAdapter(testDBDSN())
	require.NoError(t, err)
	thing.Configure(dbAdapter, nil)
	err = thing.AutoMigrate(&model.User{}, &model.Subject{}, &model.Note{}, &model.UserProfile{}, &model.WatchlistEntry{})
	require.NoError(t, err)
	require.NoError(t, model.UserInit())
	require.NoError(t, model.SubjectInit())
	require.NoError(t, model.NoteInit())
	require.NoError(t, model.UserProfileInit())
	require.NoError(t, model.WatchlistInit())
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-session-secret"))
	r.Use(sessions.Sessions("session", store))
	return r
}

func newTestUser(t *testing.T, username string, role int) (*model.User, string) {
	t.Helper()
	user := &model.User{
		Username:    username,
		Password:    "secret123",
		DisplayName: username,
		Email:       username + "@uni.edu",
		Role:        role,
		Status:      common.UserStatusEnabled,
	}
	require.NoError(t, user.Insert())
	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func doJSONRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) common.APIResponse {
	t.Helper()
	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

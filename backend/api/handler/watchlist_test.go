package handler

import (
	"fmt"
	"net/http"
	"testing"

	"learnnest/backend/api/middleware"
	"learnnest/backend/common"
	"learnnest/backend/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatchlistRouter() *gin.Engine {
	router := newTestRouter()
	watchlist := router.Group("/api/watchlist")
	{
		watchlist.GET("", middleware.OptionalUserAuth(), GetWatchlist)
		watchlist.GET("/:note_id", middleware.OptionalUserAuth(), CheckWatchlist)
		watchlist.POST("/:note_id", middleware.UserAuth(), AddToWatchlist)
		watchlist.DELETE("/:note_id", middleware.UserAuth(), RemoveFromWatchlist)
	}
	return router
}

func createWatchlistNote(t *testing.T, user *model.User) *model.Note {
	t.Helper()
	subject := &model.Subject{Name: "Physics", Color: "#EF4444"}
	require.NoError(t, model.CreateSubject(subject))
	note := &model.Note{
		Title:        "Optics Cheat Sheet",
		SubjectID:    subject.ID,
		SubjectName:  subject.Name,
		MaterialName: "Physics II",
		FileID:       "object-optics",
		FileName:     "optics.pdf",
		FileType:     "application/pdf",
		Year:         2024,
		Type:         model.NoteTypeNotes,
		UploadedBy:   user.ID,
	}
	require.NoError(t, model.CreateNote(note))
	return note
}

func TestWatchlistEndpointAnonymous(t *testing.T) {
	setupHandlerTest(t)
	router := newWatchlistRouter()

	// Logged-out readers get an empty list, not an auth error.
	w := doJSONRequest(t, router, http.MethodGet, "/api/watchlist", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data)

	w = doJSONRequest(t, router, http.MethodGet, "/api/watchlist/42", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	require.True(t, resp.Success)
	assert.Equal(t, false, resp.Data)
}

func TestWatchlistEndpointMutationsRequireAuth(t *testing.T) {
	setupHandlerTest(t)
	router := newWatchlistRouter()

	w := doJSONRequest(t, router, http.MethodPost, "/api/watchlist/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSONRequest(t, router, http.MethodDelete, "/api/watchlist/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWatchlistEndpointRoundTrip(t *testing.T) {
	setupHandlerTest(t)
	router := newWatchlistRouter()
	user, token := newTestUser(t, "alice", common.RoleCommonUser)
	note := createWatchlistNote(t, user)
	path := fmt.Sprintf("/api/watchlist/%d", note.ID)

	w := doJSONRequest(t, router, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := dataAsMap(t, decodeResponse(t, w))["watchlist_id"]

	// Re-adding is idempotent and returns the same entry id.
	w = doJSONRequest(t, router, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, dataAsMap(t, decodeResponse(t, w))["watchlist_id"])

	w = doJSONRequest(t, router, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResponse(t, w).Data)

	w = doJSONRequest(t, router, http.MethodGet, "/api/watchlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataAsList(t, decodeResponse(t, w))
	require.Len(t, list, 1)
	assert.Equal(t, "Optics Cheat Sheet", list[0].(map[string]interface{})["title"])

	w = doJSONRequest(t, router, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing again is still a success.
	w = doJSONRequest(t, router, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSONRequest(t, router, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeResponse(t, w).Data)
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnnest/backend/api/middleware"
	"learnnest/backend/common"
	"learnnest/backend/model"
	"learnnest/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter() *gin.Engine {
	router := newTestRouter()
	api := router.Group("/api")
	auth := api.Group("/auth")
	{
		auth.POST("/register", Register)
		auth.POST("/login", Login)
		auth.POST("/refresh", RefreshToken)
		auth.POST("/logout", middleware.UserAuth(), Logout)
	}
	user := api.Group("/user", middleware.UserAuth())
	{
		user.GET("/self", GetSelf)
		user.PUT("/self", UpdateSelf)
		user.GET("/token", GenerateToken)
	}
	profile := api.Group("/profile", middleware.UserAuth())
	{
		profile.GET("/self", GetProfile)
		profile.PUT("/self", UpdateProfile)
	}
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	setupHandlerTest(t)
	router := newUserRouter()

	register := RegisterRequestPayload{
		Username: "carol",
		Password: "secret123",
		Email:    "carol@uni.edu",
	}
	w := doJSONRequest(t, router, http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeResponse(t, w).Success)

	// Duplicate usernames are rejected with a readable message.
	w = doJSONRequest(t, router, http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "taken")

	login := LoginRequestPayload{Username: "carol", Password: "secret123"}
	w = doJSONRequest(t, router, http.MethodPost, "/api/auth/login", "", login)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	require.True(t, resp.Success, resp.Message)
	data := dataAsMap(t, resp)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])

	login.Password = "wrong-password"
	w = doJSONRequest(t, router, http.MethodPost, "/api/auth/login", "", login)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeResponse(t, w).Success)
}

func TestRegisterValidation(t *testing.T) {
	setupHandlerTest(t)
	router := newUserRouter()

	w := doJSONRequest(t, router, http.MethodPost, "/api/auth/register", "", RegisterRequestPayload{
		Username: "ab",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshTokenEndpoint(t *testing.T) {
	setupHandlerTest(t)
	router := newUserRouter()
	user, _ := newTestUser(t, "carol", common.RoleCommonUser)
	refreshToken, err := service.GenerateRefreshToken(user)
	require.NoError(t, err)

	w := doJSONRequest(t, router, http.MethodPost, "/api/auth/refresh", "", RefreshRequestPayload{RefreshToken: refreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, decodeResponse(t, w))
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])

	// An access token is not accepted in place of a refresh token.
	accessToken, err := service.GenerateToken(user)
	require.NoError(t, err)
	w = doJSONRequest(t, router, http.MethodPost, "/api/auth/refresh", "", RefreshRequestPayload{RefreshToken: accessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAndUpdateSelf(t *testing.T) {
	setupHandlerTest(t)
	router := newUserRouter()
	_, token := newTestUser(t, "carol", common.RoleCommonUser)

	w := doJSONRequest(t, router, http.MethodGet, "/api/user/self", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, decodeResponse(t, w))
	assert.Equal(t, "carol", data["username"])

	w = doJSONRequest(t, router, http.MethodPut, "/api/user/self", token, SelfUpdateRequestPayload{
		DisplayName: "Carol D.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = dataAsMap(t, decodeResponse(t, w))
	assert.Equal(t, "Carol D.", data["display_name"])
}

func TestAPITokenAuth(t *testing.T) {
	setupHandlerTest(t)
	router := newUserRouter()
	_, jwtToken := newTestUser(t, "carol", common.RoleCommonUser)

	// Mint an API token, then use it raw in the Authorization header the way a
	// non-browser client would.
	w := doJSONRequest(t, router, http.MethodGet, "/api/user/token", jwtToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	apiToken, ok := resp.Data.(string)
	require.True(t, ok)
	require.NotEmpty(t, apiToken)

	req, err := http.NewRequest(http.MethodGet, "/api/user/self", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", apiToken)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	data := dataAsMap(t, decodeResponse(t, w2))
	assert.Equal(t, "carol", data["username"])

	req, err = http.NewRequest(http.MethodGet, "/api/user/self", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "no-such-token")
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)
	assert.Equal(t, http.StatusUnauthorized, w3.Code)
}

func TestSessionAuth(t *testing.T) {
	setupHandlerTest(t)
	router := newUserRouter()
	newTestUser(t, "carol", common.RoleCommonUser)

	w := doJSONRequest(t, router, http.MethodPost, "/api/auth/login", "", LoginRequestPayload{
		Username: "carol",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeResponse(t, w).Success)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The session cookie alone authenticates, no Authorization header needed.
	req, err := http.NewRequest(http.MethodGet, "/api/user/self", nil)
	require.NoError(t, err)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	data := dataAsMap(t, decodeResponse(t, w2))
	assert.Equal(t, "carol", data["username"])
}

func TestProfileEndpointLifecycle(t *testing.T) {
	setupHandlerTest(t)
	router := newUserRouter()
	user, token := newTestUser(t, "carol", common.RoleCommonUser)

	// Before the first upload there is no ledger row.
	w := doJSONRequest(t, router, http.MethodGet, "/api/profile/self", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	subject := &model.Subject{Name: "History", Color: "#84CC16"}
	require.NoError(t, model.CreateSubject(subject))
	_, err := service.CreateNote(context.Background(), user.ID, service.CreateNoteParams{
		Title:        "French Revolution Timeline",
		SubjectID:    subject.ID,
		MaterialName: "History 101",
		FileID:       "object-history",
		FileName:     "timeline.pdf",
		FileType:     "application/pdf",
		Year:         2024,
		Type:         model.NoteTypeNotes,
	})
	require.NoError(t, err)

	w = doJSONRequest(t, router, http.MethodGet, "/api/profile/self", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, decodeResponse(t, w))
	assert.Equal(t, "carol", data["nickname"])
	assert.Equal(t, float64(1), data["total_uploads"])

	w = doJSONRequest(t, router, http.MethodPut, "/api/profile/self", token, ProfileUpdateRequestPayload{
		Nickname: "CarolTheCurator",
		Bio:      "Sharing history notes.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = dataAsMap(t, decodeResponse(t, w))
	assert.Equal(t, "CarolTheCurator", data["nickname"])
	assert.Equal(t, "Sharing history notes.", data["bio"])
}

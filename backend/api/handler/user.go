package handler

import (
	"net/http"

	"learnnest/backend/common"
	apperrors "learnnest/backend/common/errors"
	"learnnest/backend/model"
	"learnnest/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type RegisterRequestPayload struct {
	Username    string `json:"username" validate:"required,min=3,max=20"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
}

func Register(c *gin.Context) {
	var payload RegisterRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	if model.IsUsernameAlreadyTaken(payload.Username) {
		common.RespErrorStr(c, http.StatusOK, "username is already taken")
		return
	}

	user := &model.User{
		Username:    payload.Username,
		Password:    payload.Password,
		DisplayName: payload.DisplayName,
		Email:       payload.Email,
		Role:        common.RoleCommonUser,
		Status:      common.UserStatusEnabled,
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}
	common.RespSuccessStr(c, "registered")
}

type LoginRequestPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(c *gin.Context) {
	var payload LoginRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}

	user := &model.User{
		Username: payload.Username,
		Password: payload.Password,
	}
	if err := user.ValidateAndFill(); err != nil {
		common.RespErrorStr(c, http.StatusOK, err.Error())
		return
	}

	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate refresh token", err)
		return
	}

	session := sessions.Default(c)
	session.Set("id", user.ID)
	session.Set("username", user.Username)
	session.Set("role", user.Role)
	session.Set("status", user.Status)
	if err := session.Save(); err != nil {
		common.SysError("failed to save session: " + err.Error())
	}

	common.RespSuccess(c, gin.H{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

type RefreshRequestPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func RefreshToken(c *gin.Context) {
	var payload RefreshRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	claims, err := service.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		common.RespUnauthorized(c, "invalid refresh token")
		return
	}
	user, err := model.GetUserByID(claims.UserID)
	if err != nil {
		common.RespUnauthorized(c, "user no longer exists")
		return
	}

	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate refresh token", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func Logout(c *gin.Context) {
	if tokenString := c.GetString("token"); tokenString != "" {
		if err := service.BlacklistToken(c, tokenString); err != nil {
			common.SysError("failed to blacklist token: " + err.Error())
		}
	}
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	common.RespSuccessStr(c, "logged out")
}

func GetSelf(c *gin.Context) {
	user, err := model.GetUserByID(currentUserID(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusOK, err.Error())
		return
	}
	common.RespSuccess(c, user)
}

type SelfUpdateRequestPayload struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=6"`
}

func UpdateSelf(c *gin.Context) {
	var payload SelfUpdateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}

	user, err := model.GetUserByID(currentUserID(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusOK, err.Error())
		return
	}
	if payload.DisplayName != "" {
		user.DisplayName = payload.DisplayName
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	updatePassword := payload.Password != ""
	if updatePassword {
		user.Password = payload.Password
	}
	if err := user.Update(updatePassword); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to update user", err)
		return
	}
	common.RespSuccess(c, user)
}

// GenerateToken issues a long-lived API token for non-browser clients.
func GenerateToken(c *gin.Context) {
	user, err := model.GetUserByID(currentUserID(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusOK, err.Error())
		return
	}
	user.Token = model.GenerateUserToken()
	if err := user.Update(false); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save token", err)
		return
	}
	common.RespSuccess(c, user.Token)
}

// GetProfile returns the caller's ledger row. The profile only exists after
// the first upload; before that the endpoint reports not found.
func GetProfile(c *gin.Context) {
	profile, err := model.GetProfileByUserID(currentUserID(c))
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrProfileNotFound) {
			common.RespNotFound(c, "profile not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to load profile", err)
		return
	}
	common.RespSuccess(c, profile)
}

type ProfileUpdateRequestPayload struct {
	Nickname string `json:"nickname" validate:"required,max=50"`
	Bio      string `json:"bio" validate:"omitempty,max=500"`
}

func UpdateProfile(c *gin.Context) {
	var payload ProfileUpdateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}

	profile, err := model.GetProfileByUserID(currentUserID(c))
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrProfileNotFound) {
			common.RespNotFound(c, "profile not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to load profile", err)
		return
	}
	profile.Nickname = payload.Nickname
	profile.Bio = payload.Bio
	if err := model.UpdateProfile(profile); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to update profile", err)
		return
	}
	common.RespSuccess(c, profile)
}

package handler

import (
	"net/http"

	"learnnest/backend/common"
	"learnnest/backend/model"

	"github.com/gin-gonic/gin"
)

func GetAllSubjects(c *gin.Context) {
	subjects, err := model.GetAllSubjects()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load subjects", err)
		return
	}
	common.RespSuccess(c, subjects)
}

type SubjectCreateRequestPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Color       string `json:"color" validate:"required,hexcolor"`
}

// CreateSubject inserts a new subject. Name uniqueness is not enforced; the
// registry is curated by admins.
func CreateSubject(c *gin.Context) {
	var payload SubjectCreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}

	subject := &model.Subject{
		Name:        payload.Name,
		Description: payload.Description,
		Color:       payload.Color,
	}
	if err := model.CreateSubject(subject); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create subject", err)
		return
	}
	common.RespSuccess(c, subject)
}

// InitializeSubjects seeds the default subjects when the registry is empty.
func InitializeSubjects(c *gin.Context) {
	if err := model.InitializeDefaultSubjects(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to initialize subjects", err)
		return
	}
	common.RespSuccessStr(c, "subjects initialized")
}

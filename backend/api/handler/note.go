package handler

import (
	"net/http"
	"strconv"

	"learnnest/backend/common"
	apperrors "learnnest/backend/common/errors"
	"learnnest/backend/model"
	"learnnest/backend/service"

	"github.com/gin-gonic/gin"
)

// GetNotes serves the filtered/searched catalog. Query parameters subject_id,
// type and year are exact-match filters that compose; search matches titles.
func GetNotes(c *gin.Context) {
	var filter model.NoteFilter

	if raw := c.Query("subject_id"); raw != "" {
		subjectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			common.RespError(c, http.StatusBadRequest, "invalid subject_id", err)
			return
		}
		filter.SubjectID = &subjectID
	}
	if raw := c.Query("type"); raw != "" {
		noteType := model.NoteType(raw)
		if !noteType.IsValid() {
			common.RespErrorStr(c, http.StatusBadRequest, "invalid type")
			return
		}
		filter.Type = &noteType
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			common.RespError(c, http.StatusBadRequest, "invalid year", err)
			return
		}
		filter.Year = &year
	}
	filter.Search = c.Query("search")

	notes, err := service.ListNotes(c.Request.Context(), filter)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load notes", err)
		return
	}
	common.RespSuccess(c, notes)
}

func GetNote(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid note id", err)
		return
	}
	note, err := service.GetNoteByID(c.Request.Context(), id)
	if err != nil {
		common.RespNotFound(c, "note not found")
		return
	}
	common.RespSuccess(c, note)
}

func GetPopularNotes(c *gin.Context) {
	notes, err := service.GetPopularNotes(c.Request.Context())
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load popular notes", err)
		return
	}
	common.RespSuccess(c, notes)
}

func GetRecentNotes(c *gin.Context) {
	notes, err := service.GetRecentNotes(c.Request.Context())
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load recent notes", err)
		return
	}
	common.RespSuccess(c, notes)
}

type NoteCreateRequestPayload struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=2000"`
	SubjectID    int64    `json:"subject_id" validate:"required"`
	SubjectName  string   `json:"subject_name" validate:"omitempty,max=100"`
	MaterialName string   `json:"material_name" validate:"required,max=200"`
	FileID       string   `json:"file_id" validate:"required"`
	FileName     string   `json:"file_name" validate:"required,max=255"`
	FileSize     int64    `json:"file_size" validate:"gte=0"`
	FileType     string   `json:"file_type" validate:"required,max=100"`
	Year         int      `json:"year" validate:"required,gte=1900,lte=2100"`
	Type         string   `json:"type" validate:"required,oneof=notes previous_papers question_papers"`
	Tags         []string `json:"tags" validate:"omitempty,dive,max=50"`
}

// CreateNote registers metadata for a file the client already pushed to the
// blob store via an upload handle.
func CreateNote(c *gin.Context) {
	var payload NoteCreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request data", err)
		return
	}

	note, err := service.CreateNote(c.Request.Context(), currentUserID(c), service.CreateNoteParams{
		Title:        payload.Title,
		Description:  payload.Description,
		SubjectID:    payload.SubjectID,
		SubjectName:  payload.SubjectName,
		MaterialName: payload.MaterialName,
		FileID:       payload.FileID,
		FileName:     payload.FileName,
		FileSize:     payload.FileSize,
		FileType:     payload.FileType,
		Year:         payload.Year,
		Type:         model.NoteType(payload.Type),
		Tags:         payload.Tags,
	})
	if err != nil {
		switch {
		case apperrors.IsCode(err, apperrors.ErrUnauthenticated):
			common.RespUnauthorized(c, err.Error())
		case apperrors.IsCode(err, apperrors.ErrSubjectNotFound), apperrors.IsCode(err, apperrors.ErrUserNotFound):
			common.RespNotFound(c, err.Error())
		default:
			common.RespError(c, http.StatusInternalServerError, "failed to create note", err)
		}
		return
	}
	common.RespSuccess(c, note)
}

// DownloadNote records a download and returns the note with a fresh file URL.
func DownloadNote(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid note id", err)
		return
	}
	note, err := service.DownloadNote(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNoteNotFound) {
			common.RespNotFound(c, "note not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to record download", err)
		return
	}
	common.RespSuccess(c, note)
}

// GenerateUploadURL hands out a presigned upload handle.
func GenerateUploadURL(c *gin.Context) {
	handle, err := service.GenerateUploadURL(c.Request.Context(), currentUserID(c))
	if err != nil {
		switch {
		case apperrors.IsCode(err, apperrors.ErrUnauthenticated):
			common.RespUnauthorized(c, err.Error())
		case apperrors.IsCode(err, apperrors.ErrStorageUnavailable):
			common.RespErrorStr(c, http.StatusServiceUnavailable, err.Error())
		default:
			common.RespError(c, http.StatusInternalServerError, "failed to generate upload url", err)
		}
		return
	}
	common.RespSuccess(c, handle)
}

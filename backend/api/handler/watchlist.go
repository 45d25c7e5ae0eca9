package handler

import (
	"net/http"
	"strconv"

	"learnnest/backend/common"
	"learnnest/backend/model"
	"learnnest/backend/service"

	"github.com/gin-gonic/gin"
)

// GetWatchlist lists the caller's bookmarked notes. Anonymous callers get an
// empty list, which keeps logged-out browsing UIs free of special cases.
func GetWatchlist(c *gin.Context) {
	notes, err := service.ListWatchlist(c.Request.Context(), currentUserID(c))
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load watchlist", err)
		return
	}
	common.RespSuccess(c, notes)
}

// CheckWatchlist reports whether the caller bookmarked the note; always false
// for anonymous callers, never an error.
func CheckWatchlist(c *gin.Context) {
	noteID, err := strconv.ParseInt(c.Param("note_id"), 10, 64)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid note id", err)
		return
	}
	userID := currentUserID(c)
	if userID == 0 {
		common.RespSuccess(c, false)
		return
	}
	inWatchlist, err := model.IsInWatchlist(userID, noteID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to check watchlist", err)
		return
	}
	common.RespSuccess(c, inWatchlist)
}

// AddToWatchlist bookmarks a note. Adding an existing bookmark returns the
// existing entry id.
func AddToWatchlist(c *gin.Context) {
	noteID, err := strconv.ParseInt(c.Param("note_id"), 10, 64)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid note id", err)
		return
	}
	entry, err := model.AddToWatchlist(currentUserID(c), noteID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to add to watchlist", err)
		return
	}
	common.RespSuccess(c, gin.H{"watchlist_id": entry.ID})
}

// RemoveFromWatchlist deletes the bookmark; removing a missing one succeeds.
func RemoveFromWatchlist(c *gin.Context) {
	noteID, err := strconv.ParseInt(c.Param("note_id"), 10, 64)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid note id", err)
		return
	}
	if err := model.RemoveFromWatchlist(currentUserID(c), noteID); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to remove from watchlist", err)
		return
	}
	common.RespSuccessStr(c, "removed")
}

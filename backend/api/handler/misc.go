package handler

import (
	"learnnest/backend/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// currentUserID returns the authenticated caller's id, 0 for anonymous
// requests coming through OptionalUserAuth.
func currentUserID(c *gin.Context) int64 {
	value, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	id, ok := value.(int64)
	if !ok {
		return 0
	}
	return id
}

func GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"system_name": common.SystemName,
		"version":     common.Version,
		"start_time":  common.StartTime,
	})
}

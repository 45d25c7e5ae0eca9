package route

import (
	"embed"
	"net/http"
	"strings"

	"learnnest/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

func setWebRouter(route *gin.Engine, buildFS embed.FS, indexPage []byte) {
	route.Use(static.Serve("/", common.EmbedFolder(buildFS, "frontend/dist")))
	route.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "API route not found",
			})
			return
		}
		// SPA fallback
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
}

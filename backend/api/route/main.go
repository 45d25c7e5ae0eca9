package route

import (
	"embed"

	"github.com/gin-gonic/gin"
)

func SetRouter(route *gin.Engine, buildFS embed.FS, indexPage []byte) {
	SetApiRouter(route)
	setWebRouter(route, buildFS, indexPage)
}

package main

import (
	"embed"
	"flag"
	"log"
	"os"
	"strconv"

	"learnnest/backend/api/middleware"
	"learnnest/backend/api/route"
	"learnnest/backend/common"
	"learnnest/backend/library/storage"
	"learnnest/backend/model"
	"learnnest/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

//go:embed frontend/dist
var buildFS embed.FS

//go:embed frontend/dist/index.html
var indexPage []byte

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := common.LoadConfigFile(); err != nil {
		common.FatalLog(err)
	}
	if common.JWTSecret == "" {
		common.FatalLog("JWT_SECRET is not configured")
	}
	if common.JWTRefreshSecret == "" {
		common.FatalLog("JWT_REFRESH_SECRET is not configured")
	}

	// Initialize Redis
	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}

	// Initialize SQL database
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.FatalLog(err)
		}
	}()

	// Connect the blob store. The catalog degrades gracefully without it:
	// browsing works, file URLs are null and uploads are refused.
	if common.MinIOEndpoint != "" {
		store, err := storage.NewMinIOStore(
			common.MinIOEndpoint,
			common.MinIOAccessKey,
			common.MinIOSecretKey,
			common.MinIOBucket,
			common.MinIOUseSSL,
		)
		if err != nil {
			common.FatalLog(err)
		}
		service.SetBlobStore(store)
		common.SysLog("blob store connected: " + common.MinIOEndpoint)
	} else {
		common.SysLog("MINIO_ENDPOINT not set, file storage is disabled")
	}

	// Initialize HTTP server
	server := gin.Default()
	server.Use(middleware.CORS())

	// Initialize session store
	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		store, _ := redis.NewStore(opt.MinIdleConns, opt.Network, opt.Addr, opt.Password, []byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	}

	route.SetRouter(server, buildFS, indexPage)

	port := strconv.Itoa(*common.Port)
	common.SysLog("server listening on port: " + port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

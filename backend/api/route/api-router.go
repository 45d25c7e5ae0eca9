package route

import (
	"learnnest/backend/api/handler"
	"learnnest/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine) {
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		// Public routes (no authentication required)
		apiRouter.GET("/status", handler.GetStatus)

		// Authentication routes
		authRoutes := apiRouter.Group("/auth")
		{
			authRoutes.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoutes.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoutes.POST("/refresh", middleware.CriticalRateLimit(), handler.RefreshToken)
			authRoutes.POST("/logout", middleware.UserAuth(), handler.Logout)
		}

		// Account routes
		userRoute := apiRouter.Group("/user")
		userRoute.Use(middleware.UserAuth())
		{
			userRoute.GET("/self", handler.GetSelf)
			userRoute.PUT("/self", handler.UpdateSelf)
			userRoute.GET("/token", handler.GenerateToken)
		}

		// Profile ledger routes
		profileRoute := apiRouter.Group("/profile")
		profileRoute.Use(middleware.UserAuth())
		{
			profileRoute.GET("/self", handler.GetProfile)
			profileRoute.PUT("/self", handler.UpdateProfile)
		}

		// Subject registry routes
		subjectRoute := apiRouter.Group("/subjects")
		{
			subjectRoute.GET("/", handler.GetAllSubjects)

			adminSubjectRoute := subjectRoute.Group("/")
			adminSubjectRoute.Use(middleware.UserAuth(), middleware.AdminAuth())
			{
				adminSubjectRoute.POST("/", handler.CreateSubject)
				adminSubjectRoute.POST("/initialize", handler.InitializeSubjects)
			}
		}

		// Note catalog routes. Browsing is public, publishing requires auth.
		noteRoute := apiRouter.Group("/notes")
		{
			noteRoute.GET("/", handler.GetNotes)
			noteRoute.GET("/popular", handler.GetPopularNotes)
			noteRoute.GET("/recent", handler.GetRecentNotes)
			noteRoute.GET("/:id", handler.GetNote)
			noteRoute.POST("/:id/download", handler.DownloadNote)

			authNoteRoute := noteRoute.Group("/")
			authNoteRoute.Use(middleware.UserAuth())
			{
				authNoteRoute.POST("/", handler.CreateNote)
				authNoteRoute.POST("/upload_url", handler.GenerateUploadURL)
			}
		}

		// Watchlist routes. Reads tolerate anonymous callers, writes do not.
		watchlistRoute := apiRouter.Group("/watchlist")
		{
			watchlistRoute.GET("/", middleware.OptionalUserAuth(), handler.GetWatchlist)
			watchlistRoute.GET("/:note_id", middleware.OptionalUserAuth(), handler.CheckWatchlist)

			authWatchlistRoute := watchlistRoute.Group("/")
			authWatchlistRoute.Use(middleware.UserAuth())
			{
				authWatchlistRoute.POST("/:note_id", handler.AddToWatchlist)
				authWatchlistRoute.DELETE("/:note_id", handler.RemoveFromWatchlist)
			}
		}
	}
}

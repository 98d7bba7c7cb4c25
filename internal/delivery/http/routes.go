package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/platewise/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		products := v1.Group("/products")
		{
			products.POST("/batch", handler.LookupBatch)
			products.GET("/:barcode", handler.GetProduct)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", handler.BrowseRecipes)
			recipes.GET("/categories", handler.RecipeCategories)
			recipes.DELETE("/cache", handler.ClearRecipeCaches)
			recipes.GET("/search", handler.SearchRecipes)
			recipes.GET("/:id", handler.GetRecipe)
		}

		nutrients := v1.Group("/nutrients")
		{
			nutrients.POST("/normalize/barcode", handler.NormalizeBarcode)
			nutrients.POST("/normalize/manual", handler.NormalizeManual)
			nutrients.POST("/normalize/recipe", handler.NormalizeRecipe)
			nutrients.POST("/label", handler.Label)
		}

		v1.GET("/daily-values", handler.DailyValues)

		intake := v1.Group("/intake")
		{
			intake.GET("", handler.ListIntakeDays)
			intake.POST("", handler.AddIntake)
			intake.GET("/:date", handler.GetIntake)
			intake.DELETE("/:date", handler.ResetIntake)
		}

		bookmarks := v1.Group("/bookmarks")
		{
			bookmarks.GET("", handler.ListBookmarks)
			bookmarks.POST("", handler.AddBookmark)
			bookmarks.DELETE("/:id", handler.RemoveBookmark)
		}

		goals := v1.Group("/goals")
		{
			goals.GET("", handler.GetGoals)
			goals.PUT("", handler.UpdateGoals)
			goals.DELETE("", handler.ResetGoals)
		}
	}

	return router
}

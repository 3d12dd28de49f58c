package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ramservice/repair-quote-api/internal/handlers"
	"github.com/ramservice/repair-quote-api/internal/middleware"
)

// CORSMiddleware tells the browser which storefront origins may call us.
// The widget runs inside shop pages on arbitrary domains, so the default is
// a wildcard; lock it down with CORS_ORIGIN where the shop list is known.
func CORSMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, x-admin-password, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests get an immediate empty reply.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware(h.Config.CORSOrigin))

	// --- Widget & health (public) ---
	router.GET("/widget.js", h.GetWidgetScript)
	router.GET("/embed", h.GetEmbedSnippet)
	router.GET("/_health", h.HealthCheck)

	// --- Public catalog API ---
	api := router.Group("/api")
	{
		api.GET("/categories", h.GetCategories)
		api.GET("/series", h.GetSeries)
		api.GET("/series/:seriesId/models", h.GetModelsForSeries)
		api.GET("/models", h.GetModels)
		api.GET("/repairs", h.GetRepairs)
		api.GET("/repairs/:key", h.GetRepairByKey)
		api.POST("/submit", h.SubmitRequest)
	}

	// --- Admin (password or token gated) ---
	router.POST("/admin/login", h.AdminLogin)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth(h.Config.AdminPassword, h.Config.JWTSecret))
	{
		admin.POST("/category", h.CreateCategory)
		admin.POST("/series", h.CreateSeries)
		admin.POST("/model", h.CreateModel)
		admin.POST("/repair", h.CreateRepair)

		admin.PUT("/model/:id", h.UpdateModel)
		admin.PUT("/repair/:id", h.UpdateRepair)

		admin.DELETE("/category/:id", h.DeleteCategory)
		admin.DELETE("/series/:id", h.DeleteSeries)
		admin.DELETE("/model/:id", h.DeleteModel)
		admin.DELETE("/repair/:id", h.DeleteRepair)

		admin.GET("/requests", h.GetServiceRequests)
	}

	// catch-all, same shape as every other error
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

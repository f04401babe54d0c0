// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketfront/internal/booking"
	"ticketfront/internal/history"
	"ticketfront/internal/shared/config"
	"ticketfront/internal/shared/database"
	"ticketfront/internal/shared/middleware"

	_ "ticketfront/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	manager    *booking.Manager
	historySvc history.Service // nil when the ledger is disabled
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, manager *booking.Manager, historySvc history.Service) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		manager:    manager,
		historySvc: historySvc,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.BearerAuth(r.config)
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupBookingRoutes(api, auth)
		r.setupHistoryRoutes(api, auth)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketfront",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketfront",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "operational",
			"api_version":     r.config.APIVersion,
			"active_sessions": r.manager.Len(),
			"history_enabled": r.historySvc != nil,
			"timestamp":       time.Now(),
		})
	})
}

// setupBookingRoutes configures the seat selection and checkout routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	bookingController := booking.NewController(r.manager)
	booking.SetupBookingRoutes(rg, bookingController, auth)
}

// setupHistoryRoutes configures the "my reservations" routes
func (r *Router) setupHistoryRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	if r.historySvc == nil {
		return
	}
	historyController := history.NewController(r.historySvc)
	history.SetupHistoryRoutes(rg, historyController, auth)
}

package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketanywhere/ticketanywhere/internal/service"
	"github.com/ticketanywhere/ticketanywhere/internal/transport/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	CookieName     string
	TimeoutSeconds int
}

func InitRoutes(
	cfg RouterConfig,
	eventHandler *EventHandler,
	ticketHandler *TicketHandler,
	userHandler *UserHandler,
	authService service.AuthService,
) *gin.Engine {
	router := gin.New()

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}

	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(cfg.TimeoutSeconds))
	router.Use(middleware.SessionAuth(authService, cfg.CookieName))

	// Auth surface: the OAuth handshake itself lives with the external
	// provider, these routes cover the session side of it.
	auth := router.Group("/auth")
	{
		auth.POST("/login", userHandler.Login)
		auth.GET("/current_user", userHandler.CurrentUser)
		auth.GET("/logout", userHandler.Logout)
	}

	api := router.Group("/api")
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", middleware.RequireAdmin(), eventHandler.CreateEvent)
			events.PUT("/:id", middleware.RequireAdmin(), eventHandler.UpdateEvent)
			events.DELETE("/:id", middleware.RequireAdmin(), eventHandler.DeleteEvent)
		}

		tickets := api.Group("/tickets")
		{
			tickets.POST("", ticketHandler.Purchase)
			tickets.GET("/user/:userId", ticketHandler.GetUserTickets)
		}

		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/receipts", ticketHandler.GetRecentReceipts)
			admin.GET("/events/:id/tickets", ticketHandler.GetEventTickets)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"innova-chat/api/handlers"
	"innova-chat/api/middleware"
	"innova-chat/db"
	_ "innova-chat/docs"
	"innova-chat/services"
)

// Services is everything the HTTP surface needs; main.go owns construction
// and lifecycle.
type Services struct {
	Chat     *services.ChatService
	Sessions *services.SessionService
	Titles   services.TitleScheduler
}

func New(svcs Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		// Try ping MongoDB
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// api routes
	api := r.Group("/api")
	{
		api.POST("/chat", handlers.ChatHandler(svcs.Chat))
		api.GET("/chats", handlers.ListSessionsHandler(svcs.Sessions))
		api.GET("/chats/:id", handlers.GetSessionMessagesHandler(svcs.Sessions))
		api.DELETE("/chats/:id", handlers.DeleteSessionHandler(svcs.Sessions))
		api.POST("/generate_title", handlers.GenerateTitleHandler(svcs.Titles))
	}

	return r
}

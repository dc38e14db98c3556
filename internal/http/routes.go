package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mindnest/backend/internal/ws"
)

const (
	// One request every 3 seconds against the spam-prone endpoints.
	rateLimitRPS   = 1.0 / 3.0
	rateLimitBurst = 5
)

// SetupRoutes wires middleware and all routes onto the router.
func SetupRoutes(router *gin.Engine, env *Env) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{env.Cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	limiter := NewIPRateLimiter(rate.Limit(rateLimitRPS), rateLimitBurst)
	go limiter.cleanupLoop(10 * time.Minute)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", RateLimitMiddleware(limiter), env.Signup)
		authGroup.POST("/login", RateLimitMiddleware(limiter), env.Login)
		authGroup.POST("/logout", env.Logout)
		authGroup.GET("/user/:id", env.RequireAuth(), env.GetUser)
		authGroup.PUT("/user/:id", env.RequireAuth(), env.UpdateUser)
	}

	ideas := api.Group("/ideas")
	{
		ideas.GET("", env.ListIdeas)
		ideas.GET("/my-ideas", env.RequireAuth(), env.MyIdeas)
		ideas.GET("/:id", env.GetIdea)
		ideas.POST("", env.RequireAuth(), env.CreateIdea)

		admin := ideas.Group("", env.RequireAuth(), env.RequireAdmin())
		{
			admin.PATCH("/:id/status", env.UpdateIdeaStatus)
			admin.PATCH("/:id/score", env.UpdateIdeaScore)
			admin.PATCH("/:id/funding", env.UpdateIdeaFunding)
			admin.PATCH("/:id/note", env.UpdateIdeaNote)
			admin.PATCH("/:id/tags", env.UpdateIdeaTags)
		}
	}

	chat := api.Group("/chat", env.RequireAuth())
	{
		chat.POST("/send", RateLimitMiddleware(limiter), env.SendMessage)
		chat.GET("/history/:receiverId", env.ChatHistory)
		chat.GET("/conversations", env.RequireAdmin(), env.Conversations)
	}

	// Websocket upgrade. Browsers cannot set headers here, so RequireAuth
	// also accepts the token query parameter.
	router.GET("/ws", env.RequireAuth(), func(c *gin.Context) {
		ws.ServeWs(env.Hub, currentUser(c).ID, c.Writer, c.Request)
	})
}

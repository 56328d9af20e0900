// Package http exposes the REST API.
package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"bookstreak/internal/core"
	"bookstreak/pkg/config"
	"bookstreak/pkg/models"
)

// Server manages the HTTP REST API server
type Server struct {
	router         *gin.Engine
	config         *config.Config
	authSvc        core.AuthService
	bookSvc        core.BookService
	readingSvc     core.ReadingService
	statsSvc       core.StatsService
	badgeSvc       core.BadgeService
	friendSvc      core.FriendService
	leaderboardSvc core.LeaderboardService
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	authSvc core.AuthService,
	bookSvc core.BookService,
	readingSvc core.ReadingService,
	statsSvc core.StatsService,
	badgeSvc core.BadgeService,
	friendSvc core.FriendService,
	leaderboardSvc core.LeaderboardService,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	s := &Server{
		router:         router,
		config:         cfg,
		authSvc:        authSvc,
		bookSvc:        bookSvc,
		readingSvc:     readingSvc,
		statsSvc:       statsSvc,
		badgeSvc:       badgeSvc,
		friendSvc:      friendSvc,
		leaderboardSvc: leaderboardSvc,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Auth routes (public, rate limited)
		auth := v1.Group("/auth")
		if s.config.RateLimit.Enabled {
			auth.Use(RateLimitMiddleware(s.config.RateLimit.RPS, s.config.RateLimit.Burst))
		}
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		// Everything else requires a valid token
		protected := v1.Group("", AuthMiddleware(s.authSvc))
		{
			// Profile
			protected.GET("/me", s.getProfile)
			protected.PUT("/me", s.updateProfile)
			protected.GET("/users/search", s.searchUsers)
			protected.GET("/users/:id", s.getUserProfile)

			// Books
			protected.POST("/books", s.createBook)
			protected.GET("/books", s.listBooks)
			protected.GET("/books/:id", s.getBook)
			protected.PUT("/books/:id", s.updateBook)
			protected.DELETE("/books/:id", s.deleteBook)

			// Readings
			protected.POST("/readings", s.logReading)
			protected.GET("/readings", s.listReadings)

			// Stats and achievements
			protected.GET("/stats", s.getStats)
			protected.GET("/badges", s.listBadges)

			// Friends
			protected.POST("/friends/requests", s.sendFriendRequest)
			protected.GET("/friends/requests", s.listFriendRequests)
			protected.POST("/friends/requests/:id/accept", s.acceptFriendRequest)
			protected.DELETE("/friends/requests/:id", s.rejectFriendRequest)
			protected.GET("/friends", s.listFriends)
			protected.DELETE("/friends/:id", s.removeFriend)
			protected.GET("/friends/activity", s.friendActivity)

			// Leaderboard
			protected.GET("/leaderboard", s.getLeaderboard)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// respondError maps a service error to the response envelope. AppErrors
// carry their own status code; anything else is a 500.
func respondError(c *gin.Context, err error) {
	status := 500
	message := "internal server error"

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		if status == 0 {
			status = 500
		}
		message = appErr.Message
	}

	c.JSON(status, models.APIResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now(),
	})
}

// respondOK writes a success envelope
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

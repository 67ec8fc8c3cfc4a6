package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/stackit-qa/backend/internal/handlers"
	"github.com/stackit-qa/backend/internal/middleware"
	"github.com/stackit-qa/backend/internal/store"
)

type Server struct {
	users         *store.UserStore
	content       *store.ContentStore
	notifications *store.NotificationStore
	handler       *handlers.Handler
}

// New wires the in-memory stores and handlers together. The stores are
// created once here and injected everywhere by reference.
func New() *Server {
	users := store.NewUserStore()
	content := store.NewContentStore(users)
	notifications := store.NewNotificationStore()

	return &Server{
		users:         users,
		content:       content,
		notifications: notifications,
		handler:       handlers.NewHandler(users, content, notifications),
	}
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	newServer := New()

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := store.SeedDemoData(newServer.users, newServer.content, newServer.notifications); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Println("✅ Demo data loaded")
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Question routes (public reads)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)
		api.GET("/questions/:id/answers", s.handler.Answer.GetAnswers)
		api.GET("/tags", s.handler.Question.GetTags)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth protected routes
			protected.GET("/me", s.handler.Auth.GetMe)

			// Question protected routes
			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.POST("/questions/:id/vote", s.handler.Question.VoteQuestion)
			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.POST("/questions/:id/accept", s.handler.Answer.AcceptAnswer)

			// Answer protected routes
			protected.POST("/answers/:answerId/vote", s.handler.Answer.VoteAnswer)

			// Notification protected routes
			protected.GET("/notifications", s.handler.Notification.GetNotifications)
			protected.GET("/notifications/unread-count", s.handler.Notification.GetUnreadCount)
			protected.POST("/notifications/:notificationId/read", s.handler.Notification.MarkRead)
			protected.POST("/notifications/read-all", s.handler.Notification.MarkAllRead)
		}
	}

	return r
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stackit-qa/backend/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Question     *QuestionHandler
	Answer       *AnswerHandler
	Notification *NotificationHandler
	User         *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(users *store.UserStore, content *store.ContentStore, notifications *store.NotificationStore) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(users),
		Question:     NewQuestionHandler(content),
		Answer:       NewAnswerHandler(content, notifications),
		Notification: NewNotificationHandler(notifications),
		User:         NewUserHandler(users, content),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

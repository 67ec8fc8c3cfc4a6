package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stackit-qa/backend/internal/store"
)

type UserHandler struct {
	users   *store.UserStore
	content *store.ContentStore
}

func NewUserHandler(users *store.UserStore, content *store.ContentStore) *UserHandler {
	return &UserHandler{users: users, content: content}
}

// GetUserProfile returns a user's profile with their questions, answers and
// activity stats
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	questions := h.content.QuestionsByAuthor(userID)
	answers := h.content.AnswersByAuthor(userID)

	accepted := 0
	for _, a := range answers {
		if a.IsAccepted {
			accepted++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		},
		"questions": questions,
		"answers":   answers,
		"stats": gin.H{
			"questions_asked":  len(questions),
			"answers_given":    len(answers),
			"answers_accepted": accepted,
		},
	})
}

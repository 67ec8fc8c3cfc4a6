package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stackit-qa/backend/internal/models"
	"github.com/stackit-qa/backend/internal/store"
)

type AnswerHandler struct {
	content       *store.ContentStore
	notifications *store.NotificationStore
}

func NewAnswerHandler(content *store.ContentStore, notifications *store.NotificationStore) *AnswerHandler {
	return &AnswerHandler{content: content, notifications: notifications}
}

// GetAnswers returns all answers for a question, accepted first then by score
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	answers, err := h.content.ListAnswers(questionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	c.JSON(http.StatusOK, answers)
}

// CreateAnswer posts a new answer and notifies the question's author, unless
// they are answering their own question.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.content.CreateAnswer(questionID, authorID, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		case errors.Is(err, store.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		}
		return
	}

	// Notify the question author. Dispatch is driven from here rather than
	// inside the content store so the stores stay decoupled.
	question, err := h.content.GetQuestion(questionID)
	if err == nil && question.AuthorID != authorID {
		relatedID := question.ID
		h.notifications.Add(
			question.AuthorID,
			models.KindAnswerPosted,
			"New Answer",
			fmt.Sprintf("%s answered your question: %s", answer.AuthorUsername, question.Title),
			&relatedID,
		)
	}

	c.JSON(http.StatusCreated, answer)
}

// AcceptAnswer marks an answer as the accepted solution (question author only)
func (h *AnswerHandler) AcceptAnswer(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	actorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.AcceptAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.content.AcceptAnswer(actorID, questionID, input.AnswerID); err != nil {
		switch {
		case errors.Is(err, store.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the question author can accept an answer"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept answer"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer accepted"})
}

// VoteAnswer casts the caller's vote on an answer
func (h *AnswerHandler) VoteAnswer(c *gin.Context) {
	answerID, err := strconv.Atoi(c.Param("answerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer id"})
		return
	}

	voterID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Direction must be up or down"})
		return
	}

	if err := h.content.CastVote(voterID, answerID, models.TargetAnswer, input.Direction); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, _ := h.content.GetAnswer(answerID)
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded", "score": answer.Score})
}

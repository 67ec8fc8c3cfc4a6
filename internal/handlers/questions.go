package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stackit-qa/backend/internal/models"
	"github.com/stackit-qa/backend/internal/store"
)

type QuestionHandler struct {
	content *store.ContentStore
}

func NewQuestionHandler(content *store.ContentStore) *QuestionHandler {
	return &QuestionHandler{content: content}
}

// GetQuestions returns all questions, newest first by default. Supports
// ?sort=newest|votes|activity and ?tag=<tag>.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	sortBy := c.DefaultQuery("sort", store.SortNewest)
	tag := c.Query("tag")

	questions := h.content.ListQuestions(sortBy, tag)

	c.JSON(http.StatusOK, questions)
}

// GetQuestion returns a single question by ID
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	question, err := h.content.GetQuestion(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	c.JSON(http.StatusOK, question)
}

// CreateQuestion creates a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	question, err := h.content.CreateQuestion(authorID, input.Title, input.Body, input.Tags)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		}
		return
	}

	c.JSON(http.StatusCreated, question)
}

// VoteQuestion casts the caller's vote on a question. Re-voting replaces the
// existing vote row.
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
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

	if err := h.content.CastVote(voterID, id, models.TargetQuestion, input.Direction); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, _ := h.content.GetQuestion(id)
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded", "score": question.Score})
}

// GetTags returns the distinct tags across all questions
func (h *QuestionHandler) GetTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Tags())
}

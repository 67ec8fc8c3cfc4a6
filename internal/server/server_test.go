package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New().RegisterRoutes()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, router *gin.Engine, username string) (string, int) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID int `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func askQuestion(t *testing.T, router *gin.Engine, token string) int {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/questions", token, gin.H{
		"title": "How to implement authentication in Go?",
		"body":  "<p>What are the best practices?</p>",
		"tags":  []string{"go", "authentication"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var q struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	return q.ID
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter()

	register(t, router, "john_doe")

	// Duplicate email fails.
	w := doJSON(t, router, http.MethodPost, "/api/register", "", gin.H{
		"username": "other_name",
		"email":    "john_doe@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email":    "john_doe@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email":    "john_doe@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	router := newTestRouter()
	token, userID := register(t, router, "jane_smith")

	w := doJSON(t, router, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "jane_smith", me.Username)

	w = doJSON(t, router, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateQuestionValidation(t *testing.T) {
	router := newTestRouter()
	token, _ := register(t, router, "asker")

	w := doJSON(t, router, http.MethodPost, "/api/questions", token, gin.H{
		"title": "Too short",
		"body":  "<p>body</p>",
		"tags":  []string{"go"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/questions", "", gin.H{
		"title": "A perfectly reasonable question title",
		"body":  "<p>body</p>",
		"tags":  []string{"go"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnswerDispatchesNotification(t *testing.T) {
	router := newTestRouter()
	askerToken, _ := register(t, router, "asker")
	answererToken, _ := register(t, router, "answerer")

	questionID := askQuestion(t, router, askerToken)

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/questions/%d/answers", questionID), answererToken, gin.H{
		"body": "<p>Use bcrypt and JWT.</p>",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The asker got exactly one notification referencing the question.
	w = doJSON(t, router, http.MethodGet, "/api/notifications", askerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var notifications []struct {
		Kind      string `json:"kind"`
		Message   string `json:"message"`
		RelatedID *int   `json:"related_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "answer_posted", notifications[0].Kind)
	assert.Contains(t, notifications[0].Message, "answerer answered your question")
	require.NotNil(t, notifications[0].RelatedID)
	assert.Equal(t, questionID, *notifications[0].RelatedID)

	// The answerer got none.
	w = doJSON(t, router, http.MethodGet, "/api/notifications/unread-count", answererToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_count": 0}`, w.Body.String())

	// Answering your own question does not notify.
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/questions/%d/answers", questionID), askerToken, gin.H{
		"body": "<p>Answering myself.</p>",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notifications/unread-count", askerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_count": 1}`, w.Body.String())

	// Mark all read.
	w = doJSON(t, router, http.MethodPost, "/api/notifications/read-all", askerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notifications/unread-count", askerToken, nil)
	assert.JSONEq(t, `{"unread_count": 0}`, w.Body.String())
}

func TestVoteQuestion(t *testing.T) {
	router := newTestRouter()
	askerToken, _ := register(t, router, "asker")
	voterToken, _ := register(t, router, "voter")

	questionID := askQuestion(t, router, askerToken)
	votePath := fmt.Sprintf("/api/questions/%d/vote", questionID)

	// Unauthenticated votes are rejected at the edge.
	w := doJSON(t, router, http.MethodPost, votePath, "", gin.H{"direction": "up"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, votePath, voterToken, gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Vote recorded", "score": 1}`, w.Body.String())

	// Re-voting the same direction keeps exactly one vote.
	w = doJSON(t, router, http.MethodPost, votePath, voterToken, gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Vote recorded", "score": 1}`, w.Body.String())

	// Switching direction moves the score by two.
	w = doJSON(t, router, http.MethodPost, votePath, voterToken, gin.H{"direction": "down"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Vote recorded", "score": -1}`, w.Body.String())

	w = doJSON(t, router, http.MethodPost, votePath, voterToken, gin.H{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/questions/999/vote", voterToken, gin.H{"direction": "up"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptAnswerEndpoint(t *testing.T) {
	router := newTestRouter()
	askerToken, _ := register(t, router, "asker")
	answererToken, _ := register(t, router, "answerer")

	questionID := askQuestion(t, router, askerToken)

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/questions/%d/answers", questionID), answererToken, gin.H{
		"body": "<p>An answer worth accepting.</p>",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var answer struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))

	acceptPath := fmt.Sprintf("/api/questions/%d/accept", questionID)

	// Only the question author may accept.
	w = doJSON(t, router, http.MethodPost, acceptPath, answererToken, gin.H{"answer_id": answer.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPost, acceptPath, askerToken, gin.H{"answer_id": answer.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/questions/%d", questionID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var question struct {
		AcceptedAnswerID *int `json:"accepted_answer_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))
	require.NotNil(t, question.AcceptedAnswerID)
	assert.Equal(t, answer.ID, *question.AcceptedAnswerID)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/questions/%d/answers", questionID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var answers []struct {
		ID         int  `json:"id"`
		IsAccepted bool `json:"is_accepted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answers))
	require.NotEmpty(t, answers)
	assert.Equal(t, answer.ID, answers[0].ID)
	assert.True(t, answers[0].IsAccepted)
}

func TestUserProfileStats(t *testing.T) {
	router := newTestRouter()
	askerToken, askerID := register(t, router, "asker")
	answererToken, answererID := register(t, router, "answerer")

	questionID := askQuestion(t, router, askerToken)

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/questions/%d/answers", questionID), answererToken, gin.H{
		"body": "<p>An answer.</p>",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var answer struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/questions/%d/accept", questionID), askerToken, gin.H{"answer_id": answer.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		Stats struct {
			QuestionsAsked  int `json:"questions_asked"`
			AnswersGiven    int `json:"answers_given"`
			AnswersAccepted int `json:"answers_accepted"`
		} `json:"stats"`
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/users/%d", askerID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, 1, profile.Stats.QuestionsAsked)
	assert.Equal(t, 0, profile.Stats.AnswersGiven)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/users/%d", answererID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, 1, profile.Stats.AnswersGiven)
	assert.Equal(t, 1, profile.Stats.AnswersAccepted)

	w = doJSON(t, router, http.MethodGet, "/api/users/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package models

import "time"

type Answer struct {
	ID             int       `json:"id"`
	QuestionID     int       `json:"question_id"`
	Body           string    `json:"body"`
	AuthorID       int       `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Score          int       `json:"score"`
	IsAccepted     bool      `json:"is_accepted"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateAnswerRequest struct {
	Body string `json:"body" binding:"required"`
}

type AcceptAnswerRequest struct {
	AnswerID int `json:"answer_id" binding:"required"`
}

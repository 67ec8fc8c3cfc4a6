package models

import "time"

type Question struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	Tags             []string  `json:"tags"`
	AuthorID         int       `json:"author_id"`
	AuthorUsername   string    `json:"author_username"`
	Score            int       `json:"score"`
	AnswerCount      int       `json:"answer_count"`
	AcceptedAnswerID *int      `json:"accepted_answer_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type CreateQuestionRequest struct {
	Title string   `json:"title" binding:"required"`
	Body  string   `json:"body" binding:"required"`
	Tags  []string `json:"tags" binding:"required"`
}

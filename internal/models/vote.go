package models

import "time"

// Vote targets.
const (
	TargetQuestion = "question"
	TargetAnswer   = "answer"
)

// Vote directions.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote model - tracks individual user votes on questions and answers.
// The ledger holds at most one row per (voter, target, kind) tuple.
type Vote struct {
	ID         int       `json:"id"`
	VoterID    int       `json:"voter_id"`
	TargetID   int       `json:"target_id"`
	TargetKind string    `json:"target_kind"`
	Direction  string    `json:"direction"`
	CreatedAt  time.Time `json:"created_at"`
}

type VoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

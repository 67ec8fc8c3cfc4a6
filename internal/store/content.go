package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/stackit-qa/backend/internal/models"
)

// Sort orders accepted by ListQuestions.
const (
	SortNewest   = "newest"
	SortVotes    = "votes"
	SortActivity = "activity"
)

// questionInput carries the store-boundary validation rules. The UI enforces
// the same limits, but the store no longer trusts its caller.
type questionInput struct {
	Title string   `validate:"required,min=10,max=150"`
	Body  string   `validate:"required"`
	Tags  []string `validate:"required,min=1,max=5,unique,dive,required"`
}

// ContentStore owns questions, answers and the vote ledger. Scores are
// derived state: they are recomputed from the ledger under the store lock on
// every ledger mutation, so no caller can read a stale score.
type ContentStore struct {
	mu        sync.RWMutex
	users     *UserStore
	questions map[int]*models.Question
	answers   map[int]*models.Answer
	votes     []models.Vote

	nextQuestionID int
	nextAnswerID   int
	nextVoteID     int

	validate *validator.Validate
}

func NewContentStore(users *UserStore) *ContentStore {
	return &ContentStore{
		users:          users,
		questions:      make(map[int]*models.Question),
		answers:        make(map[int]*models.Answer),
		nextQuestionID: 1,
		nextAnswerID:   1,
		nextVoteID:     1,
		validate:       validator.New(),
	}
}

// CreateQuestion validates the input, assigns an id and stores the question
// with zero score, zero answers and no accepted answer.
func (s *ContentStore) CreateQuestion(authorID int, title, body string, tags []string) (models.Question, error) {
	author, err := s.users.GetByID(authorID)
	if err != nil {
		return models.Question{}, err
	}

	title = strings.TrimSpace(title)
	in := questionInput{Title: title, Body: body, Tags: tags}
	if err := s.validate.Struct(in); err != nil {
		return models.Question{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := &models.Question{
		ID:             s.nextQuestionID,
		Title:          title,
		Body:           body,
		Tags:           append([]string(nil), tags...),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		CreatedAt:      time.Now().UTC(),
	}
	s.questions[q.ID] = q
	s.nextQuestionID++

	return cloneQuestion(q), nil
}

// CreateAnswer stores a new answer and increments the parent question's
// answer count in the same critical section.
func (s *ContentStore) CreateAnswer(questionID, authorID int, body string) (models.Answer, error) {
	author, err := s.users.GetByID(authorID)
	if err != nil {
		return models.Answer{}, err
	}
	if strings.TrimSpace(body) == "" {
		return models.Answer{}, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[questionID]
	if !ok {
		return models.Answer{}, fmt.Errorf("question %d %w", questionID, ErrNotFound)
	}

	a := &models.Answer{
		ID:             s.nextAnswerID,
		QuestionID:     q.ID,
		Body:           body,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		CreatedAt:      time.Now().UTC(),
	}
	s.answers[a.ID] = a
	s.nextAnswerID++
	q.AnswerCount++

	return *a, nil
}

// AcceptAnswer marks the named answer as the question's accepted solution.
// Only the question's author may accept; re-accepting a different answer is
// allowed and clears the previous flag. The whole read-then-write sequence
// runs under the store lock.
func (s *ContentStore) AcceptAnswer(actorID, questionID, answerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[questionID]
	if !ok {
		return fmt.Errorf("question %d %w", questionID, ErrNotFound)
	}
	if q.AuthorID != actorID {
		return fmt.Errorf("only the question author can accept an answer: %w", ErrUnauthorized)
	}

	a, ok := s.answers[answerID]
	if !ok || a.QuestionID != questionID {
		return fmt.Errorf("answer %d %w", answerID, ErrNotFound)
	}

	for _, other := range s.answers {
		if other.QuestionID == questionID {
			other.IsAccepted = other.ID == answerID
		}
	}
	accepted := answerID
	q.AcceptedAnswerID = &accepted

	return nil
}

// CastVote replaces any existing vote by the voter on the target and inserts
// the new one, then recomputes every score. A non-positive voter id is a
// silent no-op, mirroring the disabled-button state for signed-out users.
// Re-casting the direction the voter already holds keeps the vote; there is
// no toggle-off.
func (s *ContentStore) CastVote(voterID, targetID int, targetKind, direction string) error {
	if voterID <= 0 {
		return nil
	}
	if targetKind != models.TargetQuestion && targetKind != models.TargetAnswer {
		return fmt.Errorf("%w: unknown target kind %q", ErrInvalidInput, targetKind)
	}
	if direction != models.VoteUp && direction != models.VoteDown {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, direction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch targetKind {
	case models.TargetQuestion:
		if _, ok := s.questions[targetID]; !ok {
			return fmt.Errorf("question %d %w", targetID, ErrNotFound)
		}
	case models.TargetAnswer:
		if _, ok := s.answers[targetID]; !ok {
			return fmt.Errorf("answer %d %w", targetID, ErrNotFound)
		}
	}

	// Remove any existing vote for this (voter, target, kind) tuple.
	kept := s.votes[:0]
	for _, v := range s.votes {
		if v.VoterID == voterID && v.TargetID == targetID && v.TargetKind == targetKind {
			continue
		}
		kept = append(kept, v)
	}
	s.votes = kept

	s.votes = append(s.votes, models.Vote{
		ID:         s.nextVoteID,
		VoterID:    voterID,
		TargetID:   targetID,
		TargetKind: targetKind,
		Direction:  direction,
		CreatedAt:  time.Now().UTC(),
	})
	s.nextVoteID++

	s.recomputeScores()
	return nil
}

// recomputeScores rebuilds every derived score from the ledger. Callers must
// hold the write lock.
func (s *ContentStore) recomputeScores() {
	for _, q := range s.questions {
		q.Score = 0
	}
	for _, a := range s.answers {
		a.Score = 0
	}

	for _, v := range s.votes {
		delta := 1
		if v.Direction == models.VoteDown {
			delta = -1
		}
		switch v.TargetKind {
		case models.TargetQuestion:
			if q, ok := s.questions[v.TargetID]; ok {
				q.Score += delta
			}
		case models.TargetAnswer:
			if a, ok := s.answers[v.TargetID]; ok {
				a.Score += delta
			}
		}
	}
}

func (s *ContentStore) GetQuestion(id int) (models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return models.Question{}, fmt.Errorf("question %d %w", id, ErrNotFound)
	}
	return cloneQuestion(q), nil
}

func (s *ContentStore) GetAnswer(id int) (models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.answers[id]
	if !ok {
		return models.Answer{}, fmt.Errorf("answer %d %w", id, ErrNotFound)
	}
	return *a, nil
}

// ListQuestions returns all questions, optionally filtered by tag, ordered by
// the requested sort: "votes" (score), "activity" (answer count) or "newest"
// (default).
func (s *ContentStore) ListQuestions(sortBy, tag string) []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if tag != "" && !hasTag(q.Tags, tag) {
			continue
		}
		out = append(out, cloneQuestion(q))
	}

	sort.Slice(out, func(i, j int) bool {
		switch sortBy {
		case SortVotes:
			if out[i].Score != out[j].Score {
				return out[i].Score > out[j].Score
			}
		case SortActivity:
			if out[i].AnswerCount != out[j].AnswerCount {
				return out[i].AnswerCount > out[j].AnswerCount
			}
		default:
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
		}
		return out[i].ID > out[j].ID
	})

	return out
}

// ListAnswers returns a question's answers, accepted answer first, then by
// score descending. An unknown question id is an error so callers can tell
// "no answers" from "no question".
func (s *ContentStore) ListAnswers(questionID int) ([]models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.questions[questionID]; !ok {
		return nil, fmt.Errorf("question %d %w", questionID, ErrNotFound)
	}

	out := []models.Answer{}
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			out = append(out, *a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].IsAccepted != out[j].IsAccepted {
			return out[i].IsAccepted
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// Tags returns the sorted set of distinct tags across all questions.
func (s *ContentStore) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, q := range s.questions {
		for _, t := range q.Tags {
			seen[t] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// VotesFor returns the ledger rows for one target.
func (s *ContentStore) VotesFor(targetID int, targetKind string) []models.Vote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Vote
	for _, v := range s.votes {
		if v.TargetID == targetID && v.TargetKind == targetKind {
			out = append(out, v)
		}
	}
	return out
}

// UserVote returns the voter's current vote on a target, if any.
func (s *ContentStore) UserVote(voterID, targetID int, targetKind string) (models.Vote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.votes {
		if v.VoterID == voterID && v.TargetID == targetID && v.TargetKind == targetKind {
			return v, true
		}
	}
	return models.Vote{}, false
}

// QuestionsByAuthor returns a user's questions, newest first.
func (s *ContentStore) QuestionsByAuthor(userID int) []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Question{}
	for _, q := range s.questions {
		if q.AuthorID == userID {
			out = append(out, cloneQuestion(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// AnswersByAuthor returns a user's answers, newest first.
func (s *ContentStore) AnswersByAuthor(userID int) []models.Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Answer{}
	for _, a := range s.answers {
		if a.AuthorID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func cloneQuestion(q *models.Question) models.Question {
	out := *q
	out.Tags = append([]string(nil), q.Tags...)
	if q.AcceptedAnswerID != nil {
		id := *q.AcceptedAnswerID
		out.AcceptedAnswerID = &id
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

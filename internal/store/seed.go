package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stackit-qa/backend/internal/models"
)

// SeedDemoData loads the demo fixtures: two users, two questions, two answers
// on the first question, a couple of votes and notifications. Both demo
// accounts log in with the password "password".
func SeedDemoData(users *UserStore, content *ContentStore, notifications *NotificationStore) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users.mu.Lock()
	john := &models.User{
		ID:           users.nextID,
		Username:     "john_doe",
		Email:        "john@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	users.users[john.ID] = john
	users.nextID++

	jane := &models.User{
		ID:           users.nextID,
		Username:     "jane_smith",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleMember,
		CreatedAt:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	users.users[jane.ID] = jane
	users.nextID++
	users.mu.Unlock()

	content.mu.Lock()
	q1 := &models.Question{
		ID:    content.nextQuestionID,
		Title: "How to implement authentication in React?",
		Body: "<p>I'm building a React application and need to implement user authentication. " +
			"What are the best practices for handling login, logout, and protecting routes?</p>",
		Tags:           []string{"React", "Authentication", "JWT", "Security"},
		AuthorID:       jane.ID,
		AuthorUsername: jane.Username,
		CreatedAt:      time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	}
	content.questions[q1.ID] = q1
	content.nextQuestionID++

	q2 := &models.Question{
		ID:    content.nextQuestionID,
		Title: "Best practices for state management in large React apps?",
		Body: "<p>I'm working on a large React application with complex state requirements. " +
			"Should I use Redux, Zustand, or stick with React Context?</p>",
		Tags:           []string{"React", "State Management", "Redux", "Zustand", "Context"},
		AuthorID:       john.ID,
		AuthorUsername: john.Username,
		CreatedAt:      time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
	}
	content.questions[q2.ID] = q2
	content.nextQuestionID++

	a1 := &models.Answer{
		ID:         content.nextAnswerID,
		QuestionID: q1.ID,
		Body: "<p>For implementing authentication in React, I recommend using a combination of " +
			"<strong>Context API</strong> and <strong>JWT tokens</strong>.</p>",
		AuthorID:       john.ID,
		AuthorUsername: john.Username,
		IsAccepted:     true,
		CreatedAt:      time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC),
	}
	content.answers[a1.ID] = a1
	content.nextAnswerID++

	a2 := &models.Answer{
		ID:         content.nextAnswerID,
		QuestionID: q1.ID,
		Body: "<p>Another great approach is using libraries like <strong>Auth0</strong> or " +
			"<strong>Firebase Auth</strong> for production applications.</p>",
		AuthorID:       jane.ID,
		AuthorUsername: jane.Username,
		CreatedAt:      time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
	}
	content.answers[a2.ID] = a2
	content.nextAnswerID++

	acceptedID := a1.ID
	q1.AcceptedAnswerID = &acceptedID
	q1.AnswerCount = 2

	content.votes = append(content.votes,
		models.Vote{
			ID:         content.nextVoteID,
			VoterID:    john.ID,
			TargetID:   q1.ID,
			TargetKind: models.TargetQuestion,
			Direction:  models.VoteUp,
			CreatedAt:  time.Date(2024, 1, 20, 1, 0, 0, 0, time.UTC),
		},
		models.Vote{
			ID:         content.nextVoteID + 1,
			VoterID:    jane.ID,
			TargetID:   a1.ID,
			TargetKind: models.TargetAnswer,
			Direction:  models.VoteUp,
			CreatedAt:  time.Date(2024, 1, 20, 13, 0, 0, 0, time.UTC),
		},
	)
	content.nextVoteID += 2
	content.recomputeScores()
	content.mu.Unlock()

	relatedQ1 := q1.ID
	notifications.Add(jane.ID, models.KindAnswerPosted, "New Answer",
		"john_doe answered your question: How to implement authentication in React?", &relatedQ1)
	relatedA2 := a2.ID
	notifications.Add(john.ID, models.KindMention, "You were mentioned",
		"jane_smith mentioned you in a comment", &relatedA2)

	return nil
}

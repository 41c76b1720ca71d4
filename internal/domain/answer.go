package domain

import (
	"context"
	"time"
)

// Answer belongs to exactly one Question and is removed with it.
type Answer struct {
	ID         int64
	QuestionID int64
	UserID     int64
	AuthorName string
	Content    string
	CreatedAt  time.Time
	ModifiedAt *time.Time
	VoterIDs   []int64
}

// HasVoter reports whether userID is in the answer's voter set.
func (a *Answer) HasVoter(userID int64) bool {
	return containsID(a.VoterIDs, userID)
}

type AnswerRepository interface {
	Create(ctx context.Context, a *Answer) error
	GetByID(ctx context.Context, id int64) (*Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]Answer, error)
	Update(ctx context.Context, a *Answer) error
	Delete(ctx context.Context, id int64) error
	// AddVoter adds userID to the voter set. Adding an existing voter is a no-op.
	AddVoter(ctx context.Context, answerID, userID int64) error
}

package domain

import (
	"context"
	"time"
)

// Question is a board post. VoterIDs is the set of users who endorsed it.
type Question struct {
	ID          int64
	UserID      int64
	AuthorName  string
	Subject     string
	Content     string
	CreatedAt   time.Time
	ModifiedAt  *time.Time
	VoterIDs    []int64
	AnswerCount int
}

// HasVoter reports whether userID is in the question's voter set.
func (q *Question) HasVoter(userID int64) bool {
	return containsID(q.VoterIDs, userID)
}

// QuestionFilter selects a page of the question listing.
type QuestionFilter struct {
	Keyword string
	Limit   int
	Offset  int
}

type QuestionRepository interface {
	Create(ctx context.Context, q *Question) error
	GetByID(ctx context.Context, id int64) (*Question, error)
	// List returns questions newest first together with the total match count.
	List(ctx context.Context, filter QuestionFilter) ([]Question, int, error)
	Update(ctx context.Context, q *Question) error
	// Delete removes the question; answers and vote links go with it.
	Delete(ctx context.Context, id int64) error
	// AddVoter adds userID to the voter set. Adding an existing voter is a no-op.
	AddVoter(ctx context.Context, questionID, userID int64) error
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

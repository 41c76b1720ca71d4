package service

import (
	"context"
	"fmt"

	"github.com/msomdec/ticketboard/internal/domain"
)

// VoteService records endorsements of questions and answers.
// A voter set holds each user at most once; voting again is a silent no-op.
// Authors cannot endorse their own content.
type VoteService struct {
	questions domain.QuestionRepository
	answers   domain.AnswerRepository
}

// NewVoteService creates a new VoteService.
func NewVoteService(questions domain.QuestionRepository, answers domain.AnswerRepository) *VoteService {
	return &VoteService{questions: questions, answers: answers}
}

// VoteQuestion adds userID to the question's voter set and returns the
// question as stored afterwards.
func (s *VoteService) VoteQuestion(ctx context.Context, userID, questionID int64) (*domain.Question, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.UserID == userID {
		return nil, domain.ErrSelfVote
	}

	if !q.HasVoter(userID) {
		if err := s.questions.AddVoter(ctx, questionID, userID); err != nil {
			return nil, fmt.Errorf("vote question: %w", err)
		}
	}
	return s.questions.GetByID(ctx, questionID)
}

// VoteAnswer adds userID to the answer's voter set and returns the answer
// as stored afterwards.
func (s *VoteService) VoteAnswer(ctx context.Context, userID, answerID int64) (*domain.Answer, error) {
	a, err := s.answers.GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if a.UserID == userID {
		return nil, domain.ErrSelfVote
	}

	if !a.HasVoter(userID) {
		if err := s.answers.AddVoter(ctx, answerID, userID); err != nil {
			return nil, fmt.Errorf("vote answer: %w", err)
		}
	}
	return s.answers.GetByID(ctx, answerID)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
)

// AnswerService handles answers to questions.
type AnswerService struct {
	answers   domain.AnswerRepository
	questions domain.QuestionRepository
	now       func() time.Time
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(answers domain.AnswerRepository, questions domain.QuestionRepository) *AnswerService {
	return &AnswerService{answers: answers, questions: questions, now: time.Now}
}

// Create adds an answer by userID to an existing question.
func (s *AnswerService) Create(ctx context.Context, userID, questionID int64, content string) (*domain.Answer, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	a := &domain.Answer{QuestionID: questionID, UserID: userID, Content: content}
	if err := s.answers.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	return a, nil
}

func (s *AnswerService) GetByID(ctx context.Context, id int64) (*domain.Answer, error) {
	return s.answers.GetByID(ctx, id)
}

// Modify replaces the answer content. Only the author may modify.
func (s *AnswerService) Modify(ctx context.Context, userID, id int64, content string) (*domain.Answer, error) {
	a, err := s.answers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domain.ErrForbidden
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	a.Content = content
	now := s.now().UTC()
	a.ModifiedAt = &now

	if err := s.answers.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update answer: %w", err)
	}
	return a, nil
}

// Delete removes the answer and its votes. Only the author may delete.
// The parent question ID is returned so callers can redirect back to it.
func (s *AnswerService) Delete(ctx context.Context, userID, id int64) (int64, error) {
	a, err := s.answers.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if a.UserID != userID {
		return a.QuestionID, domain.ErrForbidden
	}

	if err := s.answers.Delete(ctx, id); err != nil {
		return a.QuestionID, err
	}
	return a.QuestionID, nil
}

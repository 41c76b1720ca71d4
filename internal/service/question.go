package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/msomdec/ticketboard/internal/domain"
)

// QuestionsPerPage is the listing page size.
const QuestionsPerPage = 10

const maxSubjectLength = 200

// QuestionPage is one page of the question listing.
type QuestionPage struct {
	Questions  []domain.Question
	Keyword    string
	Page       int
	TotalPages int
	Total      int
}

// HasPrev reports whether an earlier page exists.
func (p QuestionPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p QuestionPage) HasNext() bool { return p.Page < p.TotalPages }

// QuestionService handles question CRUD with ownership checks, and the
// keyword listing.
type QuestionService struct {
	questions domain.QuestionRepository
	answers   domain.AnswerRepository
	now       func() time.Time
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions domain.QuestionRepository, answers domain.AnswerRepository) *QuestionService {
	return &QuestionService{questions: questions, answers: answers, now: time.Now}
}

// Create validates and stores a new question owned by userID.
func (s *QuestionService) Create(ctx context.Context, userID int64, subject, content string) (*domain.Question, error) {
	q := &domain.Question{UserID: userID}
	if err := setQuestionFields(q, subject, content); err != nil {
		return nil, err
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// GetByID returns a question with its voter set.
func (s *QuestionService) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// Detail returns a question together with its answers, oldest answer first.
func (s *QuestionService) Detail(ctx context.Context, id int64) (*domain.Question, []domain.Answer, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	answers, err := s.answers.ListByQuestion(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list answers: %w", err)
	}
	return q, answers, nil
}

// List returns one page of questions, newest first. A non-empty keyword
// filters on subject, content, author, answer content and answer author.
// Pages below 1 are treated as the first page.
func (s *QuestionService) List(ctx context.Context, keyword string, page int) (*QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	keyword = strings.TrimSpace(keyword)

	questions, total, err := s.questions.List(ctx, domain.QuestionFilter{
		Keyword: keyword,
		Limit:   QuestionsPerPage,
		Offset:  (page - 1) * QuestionsPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return &QuestionPage{
		Questions:  questions,
		Keyword:    keyword,
		Page:       page,
		TotalPages: (total + QuestionsPerPage - 1) / QuestionsPerPage,
		Total:      total,
	}, nil
}

// Modify updates subject and content and stamps the modification time.
// Only the author may modify; anyone else gets ErrForbidden and nothing changes.
func (s *QuestionService) Modify(ctx context.Context, userID, id int64, subject, content string) (*domain.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if err := setQuestionFields(q, subject, content); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	q.ModifiedAt = &now

	if err := s.questions.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

// Delete removes the question with its answers and votes. Only the author may delete.
func (s *QuestionService) Delete(ctx context.Context, userID, id int64) error {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q.UserID != userID {
		return domain.ErrForbidden
	}

	return s.questions.Delete(ctx, id)
}

func setQuestionFields(q *domain.Question, subject, content string) error {
	subject = strings.TrimSpace(subject)
	content = strings.TrimSpace(content)

	if subject == "" {
		return fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(subject) > maxSubjectLength {
		return fmt.Errorf("%w: subject must be at most %d characters", domain.ErrInvalidInput, maxSubjectLength)
	}
	if content == "" {
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	q.Subject = subject
	q.Content = content
	return nil
}

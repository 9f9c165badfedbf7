package service

import (
	"context"
	"strings"
	"time"

	"fadu-store/internal/models"
	"fadu-store/internal/repository"

	"github.com/google/uuid"
)

const (
	minQuestionLen = 10
	minAnswerLen   = 5
)

type QuestionService interface {
	Ask(ctx context.Context, productID uuid.UUID, question string) (*models.ProductQuestion, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductQuestion, error)
	ListAll(ctx context.Context) ([]models.ProductQuestion, error)
	Answer(ctx context.Context, id uuid.UUID, answer string) (*models.ProductQuestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type questionService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewQuestionService(repo *repository.Repository) QuestionService {
	return &questionService{repo: repo, now: time.Now}
}

func (s *questionService) Ask(ctx context.Context, productID uuid.UUID, question string) (*models.ProductQuestion, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	question = strings.TrimSpace(question)
	if len([]rune(question)) < minQuestionLen {
		return nil, ErrQuestionTooShort
	}

	q := &models.ProductQuestion{
		ProductID: productID,
		UserID:    userID,
		Question:  question,
		CreatedAt: s.now(),
	}
	if err := s.repo.Questions.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductQuestion, error) {
	return s.repo.Questions.ListByProduct(ctx, productID)
}

func (s *questionService) ListAll(ctx context.Context) ([]models.ProductQuestion, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.Questions.ListAll(ctx)
}

func (s *questionService) Answer(ctx context.Context, id uuid.UUID, answer string) (*models.ProductQuestion, error) {
	staffID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	answer = strings.TrimSpace(answer)
	if len([]rune(answer)) < minAnswerLen {
		return nil, ErrAnswerTooShort
	}

	q, err := s.repo.Questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	// отвечаем не больше одного раза
	if q.Answer != nil {
		return nil, ErrAlreadyAnswered
	}

	now := s.now()
	if err := s.repo.Questions.SetAnswer(ctx, id, answer, staffID, now); err != nil {
		return nil, err
	}

	q.Answer = &answer
	q.AnsweredAt = &now
	q.AnsweredBy = &staffID
	return q, nil
}

func (s *questionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.repo.Questions.Delete(ctx, id)
}

package service

import (
	"context"
	"math"
	"strings"
	"time"

	"fadu-store/internal/models"
	"fadu-store/internal/repository"

	"github.com/google/uuid"
)

const maxCommentLen = 500

type StarBucket struct {
	Stars int `json:"stars"`
	Count int `json:"count"`
}

// ReviewSummary пересчитывается на каждое чтение по approved-отзывам;
// денормализованных счётчиков нет.
type ReviewSummary struct {
	Average      float64      `json:"average"`
	Total        int          `json:"total"`
	Distribution []StarBucket `json:"distribution"`
}

type ReviewService interface {
	Submit(ctx context.Context, productID uuid.UUID, rating int, comment string) (*models.ProductReview, error)
	ApprovedWithSummary(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, ReviewSummary, error)
	ListForModeration(ctx context.Context, f repository.ReviewListFilter) ([]models.ProductReview, int64, error)
	Moderate(ctx context.Context, id uuid.UUID, status models.ReviewStatus) (*models.ProductReview, error)
}

type reviewService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewReviewService(repo *repository.Repository) ReviewService {
	return &reviewService{repo: repo, now: time.Now}
}

func (s *reviewService) Submit(ctx context.Context, productID uuid.UUID, rating int, comment string) (*models.ProductReview, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) > maxCommentLen {
		return nil, ErrCommentTooLong
	}

	exists, err := s.repo.Reviews.ExistsForProductUser(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	rv := &models.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Status:    models.ReviewPending,
		CreatedAt: s.now(),
	}
	if comment != "" {
		rv.Comment = &comment
	}

	if err := s.repo.Reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) ApprovedWithSummary(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, ReviewSummary, error) {
	reviews, err := s.repo.Reviews.ListApprovedByProduct(ctx, productID)
	if err != nil {
		return nil, ReviewSummary{}, err
	}
	return reviews, Summarize(reviews), nil
}

// Summarize — средний рейтинг с одним знаком и распределение 5→1.
// Ноль отзывов — нулевая сводка, не ошибка.
func Summarize(reviews []models.ProductReview) ReviewSummary {
	sum := ReviewSummary{
		Distribution: []StarBucket{{Stars: 5}, {Stars: 4}, {Stars: 3}, {Stars: 2}, {Stars: 1}},
	}
	if len(reviews) == 0 {
		return sum
	}

	var acc int
	for _, r := range reviews {
		acc += r.Rating
		for i := range sum.Distribution {
			if sum.Distribution[i].Stars == r.Rating {
				sum.Distribution[i].Count++
			}
		}
	}
	sum.Total = len(reviews)
	sum.Average = math.Round(float64(acc)/float64(sum.Total)*10) / 10
	return sum
}

func (s *reviewService) ListForModeration(ctx context.Context, f repository.ReviewListFilter) ([]models.ProductReview, int64, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return s.repo.Reviews.List(ctx, f)
}

func (s *reviewService) Moderate(ctx context.Context, id uuid.UUID, status models.ReviewStatus) (*models.ProductReview, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if status != models.ReviewApproved && status != models.ReviewRejected {
		return nil, ErrInvalidStatus
	}

	rv, err := s.repo.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, ErrReviewNotFound
	}

	if err := s.repo.Reviews.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	rv.Status = status
	return rv, nil
}

package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fadu-store/internal/models"
	"fadu-store/internal/service"

	"github.com/google/uuid"
)

func TestSubmitReview_Validation(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewReviewService(repo)

	uid := uuid.New()
	productID := uuid.New()

	if _, err := svc.Submit(context.Background(), productID, 5, ""); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.Submit(customerCtx(uid), productID, rating, ""); !errors.Is(err, service.ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	long := strings.Repeat("я", 501)
	if _, err := svc.Submit(customerCtx(uid), productID, 4, long); !errors.Is(err, service.ErrCommentTooLong) {
		t.Fatalf("expected ErrCommentTooLong, got %v", err)
	}

	// 500 символов ровно — проходит (лимит в рунах, не байтах)
	m.reviews.CreateFunc = func(ctx context.Context, rv *models.ProductReview) error { return nil }
	if _, err := svc.Submit(customerCtx(uid), productID, 4, strings.Repeat("я", 500)); err != nil {
		t.Fatalf("500-rune comment rejected: %v", err)
	}
}

func TestSubmitReview_Duplicate(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewReviewService(repo)

	m.reviews.ExistsForProductUserFunc = func(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
		return true, nil
	}

	_, err := svc.Submit(customerCtx(uuid.New()), uuid.New(), 5, "Excelente")
	if !errors.Is(err, service.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
}

func TestSubmitReview_Success(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewReviewService(repo)

	var created *models.ProductReview
	m.reviews.CreateFunc = func(ctx context.Context, rv *models.ProductReview) error {
		created = rv
		return nil
	}

	uid := uuid.New()
	productID := uuid.New()
	rv, err := svc.Submit(customerCtx(uid), productID, 5, "  Muy buena calidad  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// новый отзыв всегда попадает в очередь модерации
	if created.Status != models.ReviewPending {
		t.Fatalf("status expected pending got %s", created.Status)
	}
	if created.UserID != uid || created.ProductID != productID {
		t.Fatalf("review attribution mismatch: %+v", created)
	}
	if rv.Comment == nil || *rv.Comment != "Muy buena calidad" {
		t.Fatalf("comment not trimmed: %+v", rv.Comment)
	}

	// пустой комментарий хранится как NULL
	_, err = svc.Submit(customerCtx(uuid.New()), productID, 3, "   ")
	if err != nil {
		t.Fatalf("Submit empty comment: %v", err)
	}
	if created.Comment != nil {
		t.Fatalf("empty comment must be nil, got %q", *created.Comment)
	}
}

func TestSummarize(t *testing.T) {
	// ноль отзывов — нулевая сводка
	sum := service.Summarize(nil)
	if sum.Average != 0 || sum.Total != 0 || len(sum.Distribution) != 5 {
		t.Fatalf("empty summary mismatch: %+v", sum)
	}

	reviews := []models.ProductReview{
		{Rating: 5}, {Rating: 5}, {Rating: 4}, {Rating: 2},
	}
	sum = service.Summarize(reviews)
	if sum.Total != 4 {
		t.Fatalf("total expected 4 got %d", sum.Total)
	}
	// (5+5+4+2)/4 = 4.0
	if sum.Average != 4.0 {
		t.Fatalf("average expected 4.0 got %v", sum.Average)
	}

	// округление до одного знака: (5+4+4)/3 = 4.333... → 4.3
	sum = service.Summarize([]models.ProductReview{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	if sum.Average != 4.3 {
		t.Fatalf("average expected 4.3 got %v", sum.Average)
	}

	// распределение отдаётся в порядке 5→1
	want := map[int]int{5: 1, 4: 2, 3: 0, 2: 0, 1: 0}
	for i, b := range sum.Distribution {
		if b.Stars != 5-i {
			t.Fatalf("distribution order broken at %d: %+v", i, sum.Distribution)
		}
		if b.Count != want[b.Stars] {
			t.Fatalf("stars %d count expected %d got %d", b.Stars, want[b.Stars], b.Count)
		}
	}
}

func TestApprovedWithSummary(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewReviewService(repo)

	productID := uuid.New()
	m.reviews.ListApprovedByProductFunc = func(ctx context.Context, pid uuid.UUID) ([]models.ProductReview, error) {
		if pid != productID {
			return nil, nil
		}
		return []models.ProductReview{{Rating: 5, Status: models.ReviewApproved}}, nil
	}

	// публичная лента доступна без токена
	list, sum, err := svc.ApprovedWithSummary(context.Background(), productID)
	if err != nil {
		t.Fatalf("ApprovedWithSummary: %v", err)
	}
	if len(list) != 1 || sum.Total != 1 || sum.Average != 5.0 {
		t.Fatalf("summary mismatch: list=%d sum=%+v", len(list), sum)
	}
}

func TestModerate(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewReviewService(repo)

	rv := &models.ProductReview{ID: uuid.New(), Status: models.ReviewPending}
	m.reviews.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.ProductReview, error) {
		if id == rv.ID {
			return rv, nil
		}
		return nil, nil
	}
	var updatedTo models.ReviewStatus
	m.reviews.UpdateStatusFunc = func(ctx context.Context, id uuid.UUID, status models.ReviewStatus) error {
		updatedTo = status
		return nil
	}

	admin := adminCtx(uuid.New(), "a@b.c")

	// только админ
	if _, err := svc.Moderate(customerCtx(uuid.New()), rv.ID, models.ReviewApproved); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// вернуть в pending нельзя
	if _, err := svc.Moderate(admin, rv.ID, models.ReviewPending); !errors.Is(err, service.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if _, err := svc.Moderate(admin, uuid.New(), models.ReviewApproved); !errors.Is(err, service.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}

	got, err := svc.Moderate(admin, rv.ID, models.ReviewApproved)
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if got.Status != models.ReviewApproved || updatedTo != models.ReviewApproved {
		t.Fatalf("moderation not applied: %+v", got)
	}
}

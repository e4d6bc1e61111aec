package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

func newBannerServiceForTest(repo *MockBannerRepository) *BannerService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewBannerService(repo, nil, logger)
}

func orderedBanners(titles ...string) []models.Banner {
	banners := make([]models.Banner, len(titles))
	for i, title := range titles {
		banners[i] = models.Banner{
			ID:           uuid.New(),
			Title:        title,
			DisplayOrder: i + 1,
		}
	}
	return banners
}

func TestReorderBanners_MoveFirstToLast(t *testing.T) {
	repo := new(MockBannerRepository)
	svc := newBannerServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("ListOrdered", mock.Anything, tenantID).Return(orderedBanners("A", "B", "C"), nil)

	var saved []models.Banner
	repo.On("SaveOrdering", mock.Anything, mock.MatchedBy(func(b []models.Banner) bool {
		saved = b
		return true
	})).Return(nil)

	result, err := svc.Reorder(context.Background(), tenantID, 0, 2)

	assert.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, []string{result[0].Title, result[1].Title, result[2].Title})
	// Orders stay a dense 1-based sequence after the move
	assert.Equal(t, []int{1, 2, 3}, []int{saved[0].DisplayOrder, saved[1].DisplayOrder, saved[2].DisplayOrder})
}

func TestReorderBanners_MoveLastToFirst(t *testing.T) {
	repo := new(MockBannerRepository)
	svc := newBannerServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("ListOrdered", mock.Anything, tenantID).Return(orderedBanners("A", "B", "C"), nil)
	repo.On("SaveOrdering", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Reorder(context.Background(), tenantID, 2, 0)

	assert.NoError(t, err)
	assert.Equal(t, "C", result[0].Title)
	assert.Equal(t, 1, result[0].DisplayOrder)
	assert.Equal(t, 3, result[2].DisplayOrder)
}

func TestReorderBanners_OutOfRangeIndexesRejected(t *testing.T) {
	cases := []struct {
		name   string
		source int
		dest   int
	}{
		{"negative source", -1, 0},
		{"source past end", 3, 0},
		{"negative destination", 0, -1},
		{"destination past end", 0, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockBannerRepository)
			svc := newBannerServiceForTest(repo)

			tenantID := uuid.New()
			repo.On("ListOrdered", mock.Anything, tenantID).Return(orderedBanners("A", "B", "C"), nil)

			_, err := svc.Reorder(context.Background(), tenantID, tc.source, tc.dest)

			assert.True(t, IsValidationError(err))
			repo.AssertNotCalled(t, "SaveOrdering", mock.Anything, mock.Anything)
		})
	}
}

func TestReorderBanners_SamePositionIsNoOp(t *testing.T) {
	repo := new(MockBannerRepository)
	svc := newBannerServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("ListOrdered", mock.Anything, tenantID).Return(orderedBanners("A", "B"), nil)

	result, err := svc.Reorder(context.Background(), tenantID, 1, 1)

	assert.NoError(t, err)
	assert.Equal(t, "A", result[0].Title)
	repo.AssertNotCalled(t, "SaveOrdering", mock.Anything, mock.Anything)
}

func TestCreateBanner_AppendsAtEndOfOrdering(t *testing.T) {
	repo := new(MockBannerRepository)
	svc := newBannerServiceForTest(repo)

	tenantID := uuid.New()
	repo.On("MaxDisplayOrder", mock.Anything, tenantID).Return(3, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	banner, err := svc.Create(context.Background(), tenantID, &models.CreateBannerRequest{
		Title:    "Clearance",
		ImageURL: "https://cdn.example.com/clearance.png",
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 4, banner.DisplayOrder)
	assert.True(t, banner.Active)
}

func TestCreateBanner_InvalidWindowRejected(t *testing.T) {
	repo := new(MockBannerRepository)
	svc := newBannerServiceForTest(repo)

	starts := mustParseTime(t, "2026-06-01T00:00:00Z")
	ends := mustParseTime(t, "2026-05-01T00:00:00Z")
	_, err := svc.Create(context.Background(), uuid.New(), &models.CreateBannerRequest{
		Title:    "Backwards",
		ImageURL: "https://cdn.example.com/x.png",
		StartsAt: &starts,
		EndsAt:   &ends,
	}, nil)

	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return parsed
}

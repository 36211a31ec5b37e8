package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReplacesEarlierReviewForSamePlaceAndAuthor(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo)

	first, err := svc.Submit(context.Background(), "gp-abc", "author-1", 2, "Undercooked", "halal_options")
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), "gp-abc", "author-1", 5, "Much better now", "certified")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	reviews, avg, count, err := svc.ListByPlace(context.Background(), "gp-abc")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "certified", reviews[0].HalalTag)
	assert.Equal(t, float64(5), avg)
	assert.Equal(t, int64(1), count)
}

func TestSubmitKeepsAuthorsIndependent(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo)

	_, err := svc.Submit(context.Background(), "gp-abc", "author-1", 3, "", "unknown")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "gp-abc", "author-2", 5, "", "muslim_owned")
	require.NoError(t, err)

	reviews, avg, count, err := svc.ListByPlace(context.Background(), "gp-abc")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, float64(4), avg)
	assert.Equal(t, int64(2), count)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo())

	tests := []struct {
		name     string
		placeID  string
		rating   int
		halalTag string
	}{
		{"empty place", "", 3, ""},
		{"rating too low", "gp-abc", 0, ""},
		{"rating too high", "gp-abc", 6, ""},
		{"bogus halal tag", "gp-abc", 3, "vegan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.placeID, "author-1", tt.rating, "", tt.halalTag)
			assert.Error(t, err)
		})
	}
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ummahhub/ummah-backend/internal/model"
)

func newRatingFixture(t *testing.T) (RatingService, *fakeRatingRepo, *fakeProfileRepo, *model.Post) {
	t.Helper()
	posts := newFakePostRepo()
	profiles := newFakeProfileRepo()
	ratings := newFakeRatingRepo(profiles)
	require.NoError(t, profiles.Upsert(context.Background(), &model.Profile{UID: "seller-1", DisplayName: "Yusuf"}))

	post := &model.Post{SellerUID: "seller-1", Title: "Bike", Description: "Kids bike", Currency: "CAD", Status: model.PostStatusActive}
	require.NoError(t, posts.Create(context.Background(), post, nil))

	return NewRatingService(ratings, posts), ratings, profiles, post
}

func TestRateUpsertsByPostAndBuyer(t *testing.T) {
	svc, ratings, profiles, post := newRatingFixture(t)

	first, err := svc.Rate(context.Background(), post.ID, "buyer-1", 3, "okay")
	require.NoError(t, err)

	// Re-rating with no review text replaces the row, not adds one.
	second, err := svc.Rate(context.Background(), post.ID, "buyer-1", 5, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, ratings.ratings, 1)

	p, err := profiles.FindByUID(context.Background(), "seller-1")
	require.NoError(t, err)
	assert.Equal(t, float64(5), p.SellerRating)
	assert.Equal(t, int64(1), p.SellerRatingCount)
}

func TestRateAggregatesAcrossBuyers(t *testing.T) {
	svc, _, profiles, post := newRatingFixture(t)

	_, err := svc.Rate(context.Background(), post.ID, "buyer-1", 4, "")
	require.NoError(t, err)
	_, err = svc.Rate(context.Background(), post.ID, "buyer-2", 2, "")
	require.NoError(t, err)

	p, err := profiles.FindByUID(context.Background(), "seller-1")
	require.NoError(t, err)
	assert.Equal(t, float64(3), p.SellerRating)
	assert.Equal(t, int64(2), p.SellerRatingCount)
}

func TestRateValidation(t *testing.T) {
	svc, _, _, post := newRatingFixture(t)

	_, err := svc.Rate(context.Background(), post.ID, "buyer-1", 0, "")
	assert.Error(t, err)
	_, err = svc.Rate(context.Background(), post.ID, "buyer-1", 6, "")
	assert.Error(t, err)
	_, err = svc.Rate(context.Background(), post.ID, "seller-1", 5, "")
	assert.Error(t, err)
	_, err = svc.Rate(context.Background(), 999, "buyer-1", 5, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

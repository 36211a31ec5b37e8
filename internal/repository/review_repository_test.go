package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ummahhub/ummah-backend/internal/model"
)

func newMockReviewRepo(t *testing.T) (ReviewRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewReviewRepository(gdb), mock
}

func TestReviewUpsertReplacesOnDuplicateKey(t *testing.T) {
	repo, mock := newMockReviewRepo(t)

	mock.ExpectExec("INSERT INTO `restaurant_reviews` (.+) ON DUPLICATE KEY UPDATE `rating`=VALUES\\(`rating`\\),`body`=VALUES\\(`body`\\),`halal_tag`=VALUES\\(`halal_tag`\\)").
		WillReturnResult(sqlmock.NewResult(11, 1))

	review := &model.RestaurantReview{
		PlaceID:   "gp-abc",
		AuthorUID: "author-1",
		Rating:    4,
		Body:      "Great shawarma",
		HalalTag:  "certified",
	}
	require.NoError(t, repo.Upsert(context.Background(), review))
	assert.NoError(t, mock.ExpectationsWereMet())
}

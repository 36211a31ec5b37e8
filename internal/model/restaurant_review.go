package model

import "time"

// RestaurantReview is keyed by the place identifier of an external
// restaurant directory; one review per (place, author).
type RestaurantReview struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaceID   string    `gorm:"column:place_id;size:128;index:idx_review_place_author,unique" json:"placeId"`
	AuthorUID string    `gorm:"column:author_uid;size:128;index:idx_review_place_author,unique" json:"authorUid"`
	Rating    int       `gorm:"not null" json:"rating"`
	Body      string    `gorm:"type:text" json:"body"`
	HalalTag  string    `gorm:"column:halal_tag;size:32" json:"halalTag"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (RestaurantReview) TableName() string {
	return "restaurant_reviews"
}

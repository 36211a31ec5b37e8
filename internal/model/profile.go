package model

import "time"

// Profile carries per-user display data plus the denormalized seller
// rating aggregate. The aggregate columns are written only by the
// rating repository's transactional recompute, never by profile writes.
type Profile struct {
	UID               string    `gorm:"column:uid;primaryKey;size:128" json:"uid"`
	DisplayName       string    `gorm:"size:120;not null" json:"displayName"`
	AvatarURL         *string   `gorm:"column:avatar_url;size:512" json:"avatarUrl,omitempty"`
	Bio               string    `gorm:"type:text" json:"bio"`
	SellerRating      float64   `gorm:"column:seller_rating;not null;default:0" json:"sellerRating"`
	SellerRatingCount int64     `gorm:"column:seller_rating_count;not null;default:0" json:"sellerRatingCount"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}

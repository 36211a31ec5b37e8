package model

import "time"

type PostStatus string

const (
	PostStatusActive PostStatus = "active"
	PostStatusSold   PostStatus = "sold"
)

type Post struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerUID   string     `gorm:"column:seller_uid;size:128;index;not null" json:"sellerUid"`
	Title       string     `gorm:"size:120;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Price       *float64   `gorm:"column:price" json:"price"`
	Currency    string     `gorm:"size:8;not null;default:USD" json:"currency"`
	Status      PostStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	SoldAt      *time.Time `gorm:"column:sold_at" json:"soldAt,omitempty"`
	// SearchText is rebuilt from title+description on every write and
	// queried in boolean mode (AND of terms).
	SearchText string    `gorm:"column:search_text;type:text;not null;index:idx_posts_search,class:FULLTEXT" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string {
	return "bazaar_posts"
}

type PostPhoto struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;not null;index:idx_post_photos_post_id" json:"postId"`
	URL       string    `gorm:"column:url;size:512;not null" json:"url"`
	Position  int       `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (PostPhoto) TableName() string {
	return "bazaar_post_photos"
}

package model

import "time"

type SellerRating struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;index:idx_rating_post_buyer,unique" json:"postId"`
	BuyerUID  string    `gorm:"column:buyer_uid;size:128;index:idx_rating_post_buyer,unique" json:"buyerUid"`
	SellerUID string    `gorm:"column:seller_uid;size:128;index" json:"sellerUid"`
	Rating    int       `gorm:"not null" json:"rating"`
	Review    string    `gorm:"type:text" json:"review"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SellerRating) TableName() string {
	return "seller_ratings"
}

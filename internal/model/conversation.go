package model

import "time"

type Conversation struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID        uint64    `gorm:"column:post_id;index:idx_post_buyer,unique" json:"postId"`
	SellerUID     string    `gorm:"column:seller_uid;size:128;index" json:"sellerUid"`
	BuyerUID      string    `gorm:"column:buyer_uid;size:128;index:idx_post_buyer,unique" json:"buyerUid"`
	LastMessageAt time.Time `gorm:"column:last_message_at;index" json:"lastMessageAt"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Conversation) TableName() string {
	return "bazaar_conversations"
}

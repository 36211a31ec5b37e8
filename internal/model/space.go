package model

import "time"

type Space struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CoverURL    *string   `gorm:"column:cover_url;size:512" json:"coverUrl,omitempty"`
	OwnerUID    string    `gorm:"column:owner_uid;size:128;index;not null" json:"ownerUid"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Space) TableName() string {
	return "spaces"
}

type SpaceEvent struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SpaceID     uint64    `gorm:"column:space_id;index;not null" json:"spaceId"`
	Title       string    `gorm:"size:160;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	StartsAt    time.Time `gorm:"column:starts_at;index;not null" json:"startsAt"`
	CreatedBy   string    `gorm:"column:created_by;size:128;not null" json:"createdBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (SpaceEvent) TableName() string {
	return "space_events"
}

type SpaceAnnouncement struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SpaceID   uint64    `gorm:"column:space_id;index;not null" json:"spaceId"`
	Title     string    `gorm:"size:160;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedBy string    `gorm:"column:created_by;size:128;not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (SpaceAnnouncement) TableName() string {
	return "space_announcements"
}

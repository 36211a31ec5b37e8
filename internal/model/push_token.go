package model

import "time"

type PushToken struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID       string    `gorm:"column:uid;size:128;index:idx_push_uid_device,unique" json:"uid"`
	DeviceID  string    `gorm:"column:device_id;size:128;index:idx_push_uid_device,unique" json:"deviceId"`
	Token     string    `gorm:"size:512;not null" json:"token"`
	Platform  string    `gorm:"size:16" json:"platform"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PushToken) TableName() string {
	return "push_tokens"
}

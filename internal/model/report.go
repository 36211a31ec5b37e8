package model

import "time"

type Report struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterUID string    `gorm:"column:reporter_uid;size:128;index;not null" json:"reporterUid"`
	TargetType  string    `gorm:"column:target_type;size:32;not null" json:"targetType"`
	TargetID    string    `gorm:"column:target_id;size:128;not null" json:"targetId"`
	Reason      string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}

package models

import (
	"time"
)

// TrackingEvent 包裹追踪事件表（仅插入，不更新不删除）
type TrackingEvent struct {
	ID        uint         `gorm:"primarykey" json:"id"`            // 主键
	ParcelID  uint         `gorm:"index;not null" json:"parcel_id"` // 包裹ID
	Location  string       `gorm:"not null" json:"location"`        // 事件地点
	Status    ParcelStatus `gorm:"not null" json:"status"`          // 事件时的包裹状态
	Timestamp time.Time    `gorm:"index;not null" json:"timestamp"` // 事件时间
	Note      string       `gorm:"default:''" json:"note"`          // 备注
}

// TableName 指定表名
func (TrackingEvent) TableName() string {
	return "tracking_events"
}

package models

import (
	"time"
)

// ParcelStatus 包裹状态
type ParcelStatus string

// 包裹状态常量
const (
	ParcelStatusPending    ParcelStatus = "PENDING"
	ParcelStatusApproved   ParcelStatus = "APPROVED"
	ParcelStatusDispatched ParcelStatus = "DISPATCHED"
	ParcelStatusInTransit  ParcelStatus = "IN_TRANSIT"
	ParcelStatusDelivered  ParcelStatus = "DELIVERED"
	ParcelStatusReceived   ParcelStatus = "RECEIVED"
	ParcelStatusReturned   ParcelStatus = "RETURNED"
	ParcelStatusCancelled  ParcelStatus = "CANCELLED"
)

// Valid 校验包裹状态取值
func (s ParcelStatus) Valid() bool {
	switch s {
	case ParcelStatusPending, ParcelStatusApproved, ParcelStatusDispatched,
		ParcelStatusInTransit, ParcelStatusDelivered, ParcelStatusReceived,
		ParcelStatusReturned, ParcelStatusCancelled:
		return true
	}
	return false
}

// ParcelType 包裹类型
type ParcelType string

// 包裹类型常量
const (
	ParcelTypeDocument ParcelType = "DOCUMENT"
	ParcelTypeBox      ParcelType = "BOX"
	ParcelTypeFragile  ParcelType = "FRAGILE"
	ParcelTypeOther    ParcelType = "OTHER"
)

// Valid 校验包裹类型取值
func (t ParcelType) Valid() bool {
	switch t {
	case ParcelTypeDocument, ParcelTypeBox, ParcelTypeFragile, ParcelTypeOther:
		return true
	}
	return false
}

// Parcel 包裹表
type Parcel struct {
	ID              uint         `gorm:"primarykey" json:"id"`                    // 主键
	SenderID        uint         `gorm:"index;not null" json:"sender_id"`         // 寄件人ID
	ReceiverID      uint         `gorm:"index;not null" json:"receiver_id"`       // 收件人ID
	PickupAddress   string       `gorm:"not null" json:"pickup_address"`          // 取件地址
	DeliveryAddress string       `gorm:"not null" json:"delivery_address"`        // 送达地址
	ContactNumber   string       `gorm:"not null" json:"contact_number"`          // 联系电话
	Weight          float64      `gorm:"not null" json:"weight"`                  // 重量（kg）
	Cost            Money        `gorm:"type:decimal(20,2);not null" json:"cost"` // 运费
	ParcelType      ParcelType   `gorm:"not null" json:"parcel_type"`             // 包裹类型
	Description     string       `gorm:"default:''" json:"description"`           // 描述
	Status          ParcelStatus `gorm:"index;default:'PENDING'" json:"status"`   // 包裹状态
	TrackingID      *string      `gorm:"uniqueIndex" json:"tracking_id"`          // 追踪单号（批准后生成）
	CreatedAt       time.Time    `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt       time.Time    `gorm:"index" json:"updated_at"`                 // 更新时间

	// 关联
	TrackingEvents []TrackingEvent `gorm:"foreignKey:ParcelID" json:"tracking_events,omitempty"` // 追踪事件（仅追加）
}

// TableName 指定表名
func (Parcel) TableName() string {
	return "parcels"
}

package models

import (
	"time"
)

// ContactMessageStatus 留言处理状态
type ContactMessageStatus string

// 留言处理状态常量
const (
	ContactMessagePending  ContactMessageStatus = "pending"
	ContactMessageResolved ContactMessageStatus = "resolved"
)

// ContactMessage 联系留言表
type ContactMessage struct {
	ID        uint                 `gorm:"primarykey" json:"id"`                  // 主键
	Name      string               `gorm:"not null" json:"name"`                  // 姓名
	Email     string               `gorm:"index;not null" json:"email"`           // 邮箱
	Subject   string               `gorm:"not null" json:"subject"`               // 主题
	Message   string               `gorm:"not null" json:"message"`               // 内容
	Status    ContactMessageStatus `gorm:"index;default:'pending'" json:"status"` // 处理状态
	CreatedAt time.Time            `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt time.Time            `gorm:"index" json:"updated_at"`               // 更新时间
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}

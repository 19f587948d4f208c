package models

import (
	"time"
)

// UserRole 用户角色
type UserRole string

// 用户角色常量
const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleVendor     UserRole = "VENDOR"
	RoleCustomer   UserRole = "CUSTOMER"
)

// Valid 校验角色取值
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleVendor, RoleCustomer:
		return true
	}
	return false
}

// UserStatus 账号状态
type UserStatus string

// 账号状态常量
const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBlocked  UserStatus = "BLOCKED"
	UserStatusBanned   UserStatus = "BANNED"
)

// Valid 校验账号状态取值
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusBlocked, UserStatusBanned:
		return true
	}
	return false
}

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                  // 主键
	Name         string     `gorm:"not null" json:"name"`                  // 姓名
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`     // 邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                     // 密码哈希（不返回给前端）
	Phone        string     `gorm:"default:''" json:"phone"`               // 电话
	Address      string     `gorm:"default:''" json:"address"`             // 地址
	Picture      string     `gorm:"default:''" json:"picture"`             // 头像地址
	Role         UserRole   `gorm:"index;default:'CUSTOMER'" json:"role"`  // 角色
	Status       UserStatus `gorm:"index;default:'ACTIVE'" json:"status"`  // 账号状态
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`      // 是否已验证
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt    time.Time  `gorm:"index" json:"updated_at"`               // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

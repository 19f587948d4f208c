package models

import (
	"github.com/parcel-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultSuperAdmin 初始化默认超级管理员账号
func InitDefaultSuperAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", RoleSuperAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "super@parcel.local"
	}
	if password == "" {
		password = "super123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	superAdmin := User{
		Name:         "Super Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleSuperAdmin,
		Status:       UserStatusActive,
		IsVerified:   true,
	}

	if err := DB.Create(&superAdmin).Error; err != nil {
		return err
	}

	if password == "super123" {
		logger.Warnw("default_super_admin_created_with_default_password", "email", email, "password", password)
		logger.Warnw("default_super_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_super_admin_created", "email", email, "password_hidden", true)
	}

	return nil
}

package repository

import (
	"errors"

	"github.com/parcel-next/internal/models"

	"gorm.io/gorm"
)

// ContactMessageRepository 联系留言数据访问接口
type ContactMessageRepository interface {
	Create(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	UpdateStatus(id uint, status models.ContactMessageStatus) error
	List(filter ContactMessageListFilter) ([]models.ContactMessage, int64, error)
}

// GormContactMessageRepository GORM 实现
type GormContactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository 创建联系留言仓库
func NewContactMessageRepository(db *gorm.DB) *GormContactMessageRepository {
	return &GormContactMessageRepository{db: db}
}

// Create 创建留言
func (r *GormContactMessageRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// GetByID 根据 ID 获取留言
func (r *GormContactMessageRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// UpdateStatus 更新留言处理状态
func (r *GormContactMessageRepository) UpdateStatus(id uint, status models.ContactMessageStatus) error {
	return r.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("status", status).Error
}

// List 留言列表
func (r *GormContactMessageRepository) List(filter ContactMessageListFilter) ([]models.ContactMessage, int64, error) {
	query := r.db.Model(&models.ContactMessage{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var messages []models.ContactMessage
	if err := query.Order("id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

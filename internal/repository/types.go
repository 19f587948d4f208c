package repository

import (
	"errors"

	"github.com/parcel-next/internal/models"
)

// ErrStaleState 条件更新未命中任何行，说明记录状态已被其他请求修改。
var ErrStaleState = errors.New("record state changed by another request")

// ReceiverParcelFilter 查询收件人包裹列表的过滤条件
type ReceiverParcelFilter struct {
	ReceiverID      uint
	Status          models.ParcelStatus
	ExcludeStatuses []models.ParcelStatus
}

// ContactMessageListFilter 查询联系留言列表的过滤条件
type ContactMessageListFilter struct {
	Page     int
	PageSize int
	Status   models.ContactMessageStatus
	Email    string
}

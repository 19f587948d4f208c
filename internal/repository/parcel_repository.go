package repository

import (
	"errors"
	"strings"

	"github.com/parcel-next/internal/models"

	"gorm.io/gorm"
)

// ParcelRepository 包裹数据访问接口
type ParcelRepository interface {
	Create(parcel *models.Parcel) error
	GetByID(id uint) (*models.Parcel, error)
	GetByIDAndSender(id, senderID uint) (*models.Parcel, error)
	GetByIDAndReceiver(id, receiverID uint) (*models.Parcel, error)
	GetByIDAndParty(id, userID uint) (*models.Parcel, error)
	GetByTrackingID(trackingID string) (*models.Parcel, error)
	ListByParty(userID uint) ([]models.Parcel, error)
	ListByReceiver(filter ReceiverParcelFilter) ([]models.Parcel, error)
	Query(params map[string]string) ([]models.Parcel, PageMeta, error)
	TransitionStatus(id uint, from models.ParcelStatus, updates map[string]interface{}, event *models.TrackingEvent) error
	ResolveReceiverEmailByParcelID(parcelID uint) (string, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormParcelRepository
}

// GormParcelRepository GORM 实现
type GormParcelRepository struct {
	db *gorm.DB
}

// NewParcelRepository 创建包裹仓库
func NewParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// WithTx 绑定事务
func (r *GormParcelRepository) WithTx(tx *gorm.DB) *GormParcelRepository {
	if tx == nil {
		return r
	}
	return &GormParcelRepository{db: tx}
}

func (r *GormParcelRepository) withEvents(query *gorm.DB) *gorm.DB {
	return query.Preload("TrackingEvents", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp asc, id asc")
	})
}

// Create 创建包裹
func (r *GormParcelRepository) Create(parcel *models.Parcel) error {
	return r.db.Create(parcel).Error
}

// GetByID 根据 ID 获取包裹
func (r *GormParcelRepository) GetByID(id uint) (*models.Parcel, error) {
	return r.getOne(r.withEvents(r.db).Where("id = ?", id))
}

// GetByIDAndSender 按寄件人归属获取包裹
func (r *GormParcelRepository) GetByIDAndSender(id, senderID uint) (*models.Parcel, error) {
	return r.getOne(r.withEvents(r.db).Where("id = ? AND sender_id = ?", id, senderID))
}

// GetByIDAndReceiver 按收件人归属获取包裹
func (r *GormParcelRepository) GetByIDAndReceiver(id, receiverID uint) (*models.Parcel, error) {
	return r.getOne(r.withEvents(r.db).Where("id = ? AND receiver_id = ?", id, receiverID))
}

// GetByIDAndParty 按寄件人或收件人归属获取包裹
func (r *GormParcelRepository) GetByIDAndParty(id, userID uint) (*models.Parcel, error) {
	return r.getOne(r.withEvents(r.db).
		Where("id = ? AND (sender_id = ? OR receiver_id = ?)", id, userID, userID))
}

// GetByTrackingID 按追踪单号获取包裹
func (r *GormParcelRepository) GetByTrackingID(trackingID string) (*models.Parcel, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, nil
	}
	return r.getOne(r.withEvents(r.db).Where("tracking_id = ?", trackingID))
}

func (r *GormParcelRepository) getOne(query *gorm.DB) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := query.First(&parcel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parcel, nil
}

// ListByParty 获取用户作为寄件人或收件人的全部包裹
func (r *GormParcelRepository) ListByParty(userID uint) ([]models.Parcel, error) {
	var parcels []models.Parcel
	if err := r.withEvents(r.db).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// ListByReceiver 获取收件人包裹列表，支持状态等值与排除过滤
func (r *GormParcelRepository) ListByReceiver(filter ReceiverParcelFilter) ([]models.Parcel, error) {
	query := r.withEvents(r.db).Where("receiver_id = ?", filter.ReceiverID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.ExcludeStatuses) > 0 {
		query = query.Where("status NOT IN ?", filter.ExcludeStatuses)
	}

	var parcels []models.Parcel
	if err := query.Order("created_at desc").Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// 管理端列表的可检索列
var parcelSearchColumns = []string{
	"tracking_id",
	"pickup_address",
	"delivery_address",
	"contact_number",
	"description",
}

// Query 管理端包裹列表（检索、过滤、排序、投影、分页）
func (r *GormParcelRepository) Query(params map[string]string) ([]models.Parcel, PageMeta, error) {
	builder := NewQueryBuilder(r.db.Model(&models.Parcel{}), params).
		Search(parcelSearchColumns...).
		Filter().
		Sort().
		Fields().
		Paginate()

	var parcels []models.Parcel
	if err := builder.Find(&parcels); err != nil {
		return nil, PageMeta{}, err
	}
	meta, err := builder.Meta()
	if err != nil {
		return nil, PageMeta{}, err
	}
	return parcels, meta, nil
}

// TransitionStatus 在单个事务内完成条件状态更新与追踪事件追加。
// WHERE 带上加载时的状态，更新行数为 0 视为并发冲突。
func (r *GormParcelRepository) TransitionStatus(id uint, from models.ParcelStatus, updates map[string]interface{}, event *models.TrackingEvent) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Parcel{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleState
		}
		if event != nil {
			event.ParcelID = id
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ResolveReceiverEmailByParcelID 根据包裹 ID 解析状态通知的收件邮箱。
func (r *GormParcelRepository) ResolveReceiverEmailByParcelID(parcelID uint) (string, error) {
	if parcelID == 0 {
		return "", nil
	}

	var parcelRow struct {
		ReceiverID uint
	}
	if err := r.db.Model(&models.Parcel{}).
		Select("receiver_id").
		Where("id = ?", parcelID).
		Take(&parcelRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	var userRow struct {
		Email string
	}
	if err := r.db.Model(&models.User{}).
		Select("email").
		Where("id = ?", parcelRow.ReceiverID).
		Take(&userRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(userRow.Email), nil
}

// Delete 硬删除包裹及其追踪事件
func (r *GormParcelRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parcel_id = ?", id).Delete(&models.TrackingEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Parcel{}, id).Error
	})
}

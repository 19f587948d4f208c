package service

import (
	"context"
	"strings"
	"time"

	"github.com/parcel-next/internal/cache"
	"github.com/parcel-next/internal/config"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/repository"
)

// ParcelService 包裹查询服务，面向寄件人与收件人的共享读取口径
type ParcelService struct {
	cfg        *config.Config
	parcelRepo repository.ParcelRepository
	userRepo   repository.UserRepository
}

// NewParcelService 创建包裹查询服务实例
func NewParcelService(cfg *config.Config, parcelRepo repository.ParcelRepository, userRepo repository.UserRepository) *ParcelService {
	return &ParcelService{
		cfg:        cfg,
		parcelRepo: parcelRepo,
		userRepo:   userRepo,
	}
}

// ParcelView 带寄收双方显示名的包裹视图
type ParcelView struct {
	models.Parcel
	SenderName   string `json:"sender_name"`
	ReceiverName string `json:"receiver_name"`
}

// GetMyParcels 当前用户作为寄件人或收件人的全部包裹，按创建时间倒序
func (s *ParcelService) GetMyParcels(userID uint) ([]ParcelView, error) {
	parcels, err := s.parcelRepo.ListByParty(userID)
	if err != nil {
		return nil, err
	}
	return attachPartyNames(s.userRepo, parcels)
}

// GetParcelByID 按归属获取单个包裹，非寄收双方视同不存在
func (s *ParcelService) GetParcelByID(parcelID, userID uint) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByIDAndParty(parcelID, userID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, notFoundError("Parcel not found or you are not authorized to access this parcel.", ErrParcelNotFound)
	}
	return parcel, nil
}

// TrackingSnapshot 公开追踪查询结果
type TrackingSnapshot struct {
	TrackingID      string                 `json:"tracking_id"`
	Status          models.ParcelStatus    `json:"status"`
	ParcelType      models.ParcelType      `json:"parcel_type"`
	PickupAddress   string                 `json:"pickup_address"`
	DeliveryAddress string                 `json:"delivery_address"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	TrackingEvents  []models.TrackingEvent `json:"tracking_events"`
}

func trackingSnapshotKey(trackingID string) string {
	return "tracking:" + trackingID
}

// TrackByTrackingID 按追踪单号公开查询包裹轨迹，结果短期缓存
func (s *ParcelService) TrackByTrackingID(ctx context.Context, trackingID string) (*TrackingSnapshot, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, notFoundError("Parcel not found", ErrTrackingNotFound)
	}

	var cached TrackingSnapshot
	if hit, err := cache.GetJSON(ctx, trackingSnapshotKey(trackingID), &cached); err == nil && hit {
		return &cached, nil
	}

	parcel, err := s.parcelRepo.GetByTrackingID(trackingID)
	if err != nil {
		return nil, err
	}
	if parcel == nil || parcel.TrackingID == nil {
		return nil, notFoundError("Parcel not found", ErrTrackingNotFound)
	}

	snapshot := &TrackingSnapshot{
		TrackingID:      *parcel.TrackingID,
		Status:          parcel.Status,
		ParcelType:      parcel.ParcelType,
		PickupAddress:   parcel.PickupAddress,
		DeliveryAddress: parcel.DeliveryAddress,
		CreatedAt:       parcel.CreatedAt,
		UpdatedAt:       parcel.UpdatedAt,
		TrackingEvents:  parcel.TrackingEvents,
	}
	_ = cache.SetJSON(ctx, trackingSnapshotKey(trackingID), snapshot, s.trackingCacheTTL())
	return snapshot, nil
}

func (s *ParcelService) trackingCacheTTL() time.Duration {
	ttl := 60
	if s.cfg != nil && s.cfg.Tracking.CacheTTLSeconds > 0 {
		ttl = s.cfg.Tracking.CacheTTLSeconds
	}
	return time.Duration(ttl) * time.Second
}

// attachPartyNames 批量补充寄件人与收件人显示名
func attachPartyNames(userRepo repository.UserRepository, parcels []models.Parcel) ([]ParcelView, error) {
	idSet := make(map[uint]struct{}, len(parcels)*2)
	for _, parcel := range parcels {
		idSet[parcel.SenderID] = struct{}{}
		idSet[parcel.ReceiverID] = struct{}{}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := userRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}

	views := make([]ParcelView, 0, len(parcels))
	for _, parcel := range parcels {
		views = append(views, ParcelView{
			Parcel:       parcel,
			SenderName:   names[parcel.SenderID],
			ReceiverName: names[parcel.ReceiverID],
		})
	}
	return views, nil
}

func fallbackLocation(location string) string {
	if strings.TrimSpace(location) == "" {
		return "Unknown"
	}
	return location
}

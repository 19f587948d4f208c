package service

import (
	"context"
	"time"

	"github.com/parcel-next/internal/cache"
	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/queue"
	"github.com/parcel-next/internal/repository"
)

// AdminParcelService 管理端包裹服务
type AdminParcelService struct {
	parcelRepo  repository.ParcelRepository
	queueClient *queue.Client
}

// NewAdminParcelService 创建管理端包裹服务实例
func NewAdminParcelService(parcelRepo repository.ParcelRepository, queueClient *queue.Client) *AdminParcelService {
	return &AdminParcelService{
		parcelRepo:  parcelRepo,
		queueClient: queueClient,
	}
}

// GetAllParcels 管理端包裹列表，支持检索、过滤、排序、投影与分页
func (s *AdminParcelService) GetAllParcels(params map[string]string) ([]models.Parcel, repository.PageMeta, error) {
	return s.parcelRepo.Query(params)
}

// GetParcel 按 ID 获取包裹
func (s *AdminParcelService) GetParcel(parcelID uint) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByID(parcelID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, notFoundError("Parcel not found", ErrParcelNotFound)
	}
	return parcel, nil
}

// ApproveParcel 管理员审批通过，首次审批分配追踪单号并追加事件
func (s *AdminParcelService) ApproveParcel(parcelID uint) (*models.Parcel, error) {
	parcel, err := s.GetParcel(parcelID)
	if err != nil {
		return nil, err
	}
	switch parcel.Status {
	case models.ParcelStatusApproved,
		models.ParcelStatusInTransit,
		models.ParcelStatusDelivered,
		models.ParcelStatusReceived:
		return nil, stateConflictError("Parcel is already %s", parcel.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.ParcelStatusApproved,
		"updated_at": now,
	}
	if parcel.TrackingID == nil {
		updates["tracking_id"] = GenerateTrackingID()
	}
	event := &models.TrackingEvent{
		Location:  fallbackLocation(parcel.PickupAddress),
		Status:    models.ParcelStatusApproved,
		Timestamp: now,
		Note:      "Parcel approved by admin",
	}
	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, event); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	s.invalidateTrackingSnapshot(parcel)
	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, models.ParcelStatusApproved)
	return s.parcelRepo.GetByID(parcel.ID)
}

// DeliverParcel 管理员标记送达，缺失追踪单号时补发
func (s *AdminParcelService) DeliverParcel(parcelID uint) (*models.Parcel, error) {
	parcel, err := s.GetParcel(parcelID)
	if err != nil {
		return nil, err
	}
	if parcel.Status == models.ParcelStatusDelivered || parcel.Status == models.ParcelStatusReceived {
		return nil, stateConflictError("Parcel is already %s", parcel.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.ParcelStatusDelivered,
		"updated_at": now,
	}
	if parcel.TrackingID == nil {
		updates["tracking_id"] = GenerateTrackingID()
	}
	event := &models.TrackingEvent{
		Location:  fallbackLocation(parcel.PickupAddress),
		Status:    models.ParcelStatusDelivered,
		Timestamp: now,
		Note:      "Parcel delivered by admin",
	}
	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, event); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	s.invalidateTrackingSnapshot(parcel)
	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, models.ParcelStatusDelivered)
	return s.parcelRepo.GetByID(parcel.ID)
}

// CancelParcel 管理员取消包裹并追加事件
func (s *AdminParcelService) CancelParcel(parcelID uint) (*models.Parcel, error) {
	parcel, err := s.GetParcel(parcelID)
	if err != nil {
		return nil, err
	}
	switch parcel.Status {
	case models.ParcelStatusCancelled,
		models.ParcelStatusDelivered,
		models.ParcelStatusReceived:
		return nil, stateConflictError("Parcel is already %s and cannot be cancelled", parcel.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.ParcelStatusCancelled,
		"updated_at": now,
	}
	event := &models.TrackingEvent{
		Location:  fallbackLocation(parcel.PickupAddress),
		Status:    models.ParcelStatusCancelled,
		Timestamp: now,
		Note:      "Parcel cancelled by admin",
	}
	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, event); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	s.invalidateTrackingSnapshot(parcel)
	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, models.ParcelStatusCancelled)
	return s.parcelRepo.GetByID(parcel.ID)
}

// UpdateParcelInput 管理端通用状态更新输入
type UpdateParcelInput struct {
	Status   *models.ParcelStatus
	Location *string
	Note     *string
}

// UpdateParcel 管理端通用更新，按当前是否持有追踪单号决定事件写法
func (s *AdminParcelService) UpdateParcel(parcelID uint, input UpdateParcelInput) (*models.Parcel, error) {
	parcel, err := s.GetParcel(parcelID)
	if err != nil {
		return nil, err
	}
	if input.Status == nil {
		return parcel, nil
	}
	if !input.Status.Valid() {
		return nil, response.WrapError(response.CodeBadRequest, "Invalid parcel status.", ErrParcelStatusInvalid)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     *input.Status,
		"updated_at": now,
	}

	var event *models.TrackingEvent
	if *input.Status == models.ParcelStatusApproved && parcel.TrackingID == nil {
		updates["tracking_id"] = GenerateTrackingID()
		event = &models.TrackingEvent{
			Location:  stringOrDefault(input.Location, fallbackLocation(parcel.PickupAddress)),
			Status:    *input.Status,
			Timestamp: now,
			Note:      stringOrDefault(input.Note, "Parcel approved"),
		}
	} else if parcel.TrackingID != nil {
		event = &models.TrackingEvent{
			Location:  stringOrDefault(input.Location, "Unknown"),
			Status:    *input.Status,
			Timestamp: now,
			Note:      stringOrDefault(input.Note, ""),
		}
	}

	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, event); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	s.invalidateTrackingSnapshot(parcel)
	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, *input.Status)
	return s.parcelRepo.GetByID(parcel.ID)
}

// DeleteParcel 硬删除包裹及其追踪事件
func (s *AdminParcelService) DeleteParcel(parcelID uint) error {
	parcel, err := s.GetParcel(parcelID)
	if err != nil {
		return err
	}
	if err := s.parcelRepo.Delete(parcel.ID); err != nil {
		return err
	}
	s.invalidateTrackingSnapshot(parcel)
	return nil
}

func (s *AdminParcelService) invalidateTrackingSnapshot(parcel *models.Parcel) {
	if parcel == nil || parcel.TrackingID == nil {
		return
	}
	_ = cache.Del(context.Background(), trackingSnapshotKey(*parcel.TrackingID))
}

func stringOrDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

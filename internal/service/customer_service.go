package service

import (
	"time"

	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/queue"
	"github.com/parcel-next/internal/repository"
)

// CustomerService 收件端包裹服务
type CustomerService struct {
	parcelRepo  repository.ParcelRepository
	queueClient *queue.Client
}

// NewCustomerService 创建收件端服务实例
func NewCustomerService(parcelRepo repository.ParcelRepository, queueClient *queue.Client) *CustomerService {
	return &CustomerService{
		parcelRepo:  parcelRepo,
		queueClient: queueClient,
	}
}

// 收件箱列表排除的终态
var incomingExcludedStatuses = []models.ParcelStatus{
	models.ParcelStatusDelivered,
	models.ParcelStatusCancelled,
	models.ParcelStatusReceived,
}

// IncomingParcels 收件人名下仍在途的包裹
func (s *CustomerService) IncomingParcels(receiverID uint) ([]models.Parcel, error) {
	return s.parcelRepo.ListByReceiver(repository.ReceiverParcelFilter{
		ReceiverID:      receiverID,
		ExcludeStatuses: incomingExcludedStatuses,
	})
}

// DeliveredParcels 收件人名下已送达待确认的包裹
func (s *CustomerService) DeliveredParcels(receiverID uint) ([]models.Parcel, error) {
	return s.parcelRepo.ListByReceiver(repository.ReceiverParcelFilter{
		ReceiverID: receiverID,
		Status:     models.ParcelStatusDelivered,
	})
}

// ReceiveParcel 收件人确认签收，追加签收追踪事件
func (s *CustomerService) ReceiveParcel(parcelID, receiverID uint) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByIDAndReceiver(parcelID, receiverID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, notFoundError("Parcel not found or you are not authorized to confirm this delivery.", ErrParcelNotFound)
	}
	if parcel.Status == models.ParcelStatusReceived || parcel.Status == models.ParcelStatusCancelled {
		return nil, stateConflictError("This parcel is already %s.", parcel.Status)
	}
	if parcel.Status != models.ParcelStatusDelivered {
		return nil, stateConflictError("This parcel is not DELIVERED yet")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.ParcelStatusReceived,
		"updated_at": now,
	}
	event := &models.TrackingEvent{
		Location:  fallbackLocation(parcel.DeliveryAddress),
		Status:    models.ParcelStatusReceived,
		Timestamp: now,
		Note:      "Parcel Received by receiver",
	}
	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, event); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, models.ParcelStatusReceived)
	return s.parcelRepo.GetByID(parcel.ID)
}

// ReturnParcel 收件人发起退回，追加退回追踪事件
func (s *CustomerService) ReturnParcel(parcelID, receiverID uint) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByIDAndReceiver(parcelID, receiverID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, notFoundError("Parcel not found or you are not authorized to confirm this delivery.", ErrParcelNotFound)
	}
	if parcel.Status == models.ParcelStatusReturned || parcel.Status == models.ParcelStatusCancelled {
		return nil, stateConflictError("This parcel is already %s.", parcel.Status)
	}
	if parcel.Status != models.ParcelStatusDelivered && parcel.Status != models.ParcelStatusReceived {
		return nil, stateConflictError("parcel is not in a state to be returned. Current status: %s", parcel.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.ParcelStatusReturned,
		"updated_at": now,
	}
	event := &models.TrackingEvent{
		Location:  fallbackLocation(parcel.DeliveryAddress),
		Status:    models.ParcelStatusReturned,
		Timestamp: now,
		Note:      "Parcel Returned by receiver",
	}
	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, event); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, models.ParcelStatusReturned)
	return s.parcelRepo.GetByID(parcel.ID)
}

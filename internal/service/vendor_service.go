package service

import (
	"strings"
	"time"

	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/queue"
	"github.com/parcel-next/internal/repository"
)

// VendorService 寄件端包裹服务
type VendorService struct {
	parcelRepo  repository.ParcelRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewVendorService 创建寄件端服务实例
func NewVendorService(parcelRepo repository.ParcelRepository, userRepo repository.UserRepository, queueClient *queue.Client) *VendorService {
	return &VendorService{
		parcelRepo:  parcelRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// CreateParcelInput 创建包裹输入
type CreateParcelInput struct {
	SenderID        uint
	ReceiverID      uint
	PickupAddress   string
	DeliveryAddress string
	ContactNumber   string
	Weight          float64
	ParcelType      models.ParcelType
	Description     string
}

// CreateParcel 创建包裹，运费按类型和重量计算，初始状态为待审批
func (s *VendorService) CreateParcel(input CreateParcelInput, actorRole models.UserRole) (*models.Parcel, error) {
	if actorRole != models.RoleVendor {
		return nil, response.WrapError(response.CodeUnauthorized, "Unauthorized. Only senders can create parcels.", ErrRoleNotAllowed)
	}

	sender, err := s.userRepo.GetByID(input.SenderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, notFoundError("Sender account not found.", ErrUserNotFound)
	}
	if sender.Status == models.UserStatusBanned {
		return nil, response.WrapError(response.CodeForbidden, "Your account has been banned. Please contact support.", ErrAccountBanned)
	}

	if input.ReceiverID == 0 ||
		strings.TrimSpace(input.PickupAddress) == "" ||
		strings.TrimSpace(input.DeliveryAddress) == "" ||
		input.Weight <= 0 {
		return nil, response.WrapError(response.CodeBadRequest, "Invalid parcel payload.", ErrParcelInputInvalid)
	}

	receiver, err := s.userRepo.GetByID(input.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, notFoundError("Receiver account not found.", ErrUserNotFound)
	}

	cost, err := CalculateParcelCost(input.ParcelType, input.Weight)
	if err != nil {
		return nil, response.WrapError(response.CodeBadRequest, "Invalid parcel type.", ErrParcelTypeInvalid)
	}

	parcel := &models.Parcel{
		SenderID:        input.SenderID,
		ReceiverID:      input.ReceiverID,
		PickupAddress:   strings.TrimSpace(input.PickupAddress),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		ContactNumber:   strings.TrimSpace(input.ContactNumber),
		Weight:          input.Weight,
		Cost:            cost,
		ParcelType:      input.ParcelType,
		Description:     input.Description,
		Status:          models.ParcelStatusPending,
	}
	if err := s.parcelRepo.Create(parcel); err != nil {
		return nil, err
	}
	return parcel, nil
}

// CancelParcel 寄件人取消自己的包裹，不追加追踪事件
func (s *VendorService) CancelParcel(parcelID, senderID uint) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByIDAndSender(parcelID, senderID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, notFoundError("Parcel not found or you are not authorized to cancel this parcel.", ErrParcelNotFound)
	}
	if parcel.Status == models.ParcelStatusReceived || parcel.Status == models.ParcelStatusCancelled {
		return nil, stateConflictError("This parcel is already %s.", parcel.Status)
	}

	updates := map[string]interface{}{
		"status":     models.ParcelStatusCancelled,
		"updated_at": time.Now(),
	}
	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, nil); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, models.ParcelStatusCancelled)
	return s.parcelRepo.GetByID(parcel.ID)
}

// AcceptReturnParcel 寄件人受理退回，包裹回到待审批状态，不追加追踪事件
func (s *VendorService) AcceptReturnParcel(parcelID, senderID uint) (*models.Parcel, error) {
	parcel, err := s.parcelRepo.GetByIDAndSender(parcelID, senderID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, notFoundError("Parcel not found or you are not authorized to accept return for this parcel.", ErrParcelNotFound)
	}
	if parcel.Status == models.ParcelStatusCancelled {
		return nil, stateConflictError("This parcel is already cancelled.")
	}
	if parcel.Status == models.ParcelStatusPending {
		return nil, stateConflictError("This parcel is already pending.")
	}

	updates := map[string]interface{}{
		"status":     models.ParcelStatusPending,
		"updated_at": time.Now(),
	}
	if err := s.parcelRepo.TransitionStatus(parcel.ID, parcel.Status, updates, nil); err != nil {
		if isStaleState(err) {
			return nil, staleStateError()
		}
		return nil, err
	}

	enqueueParcelStatusEmailTaskIfEligible(s.queueClient, parcel.ID, models.ParcelStatusPending)
	return s.parcelRepo.GetByID(parcel.ID)
}

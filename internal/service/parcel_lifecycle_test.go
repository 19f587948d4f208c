package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/parcel-next/internal/config"
	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/queue"
	"github.com/parcel-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type parcelServiceFixture struct {
	db          *gorm.DB
	parcelRepo  repository.ParcelRepository
	userRepo    repository.UserRepository
	vendor      *VendorService
	customer    *CustomerService
	adminParcel *AdminParcelService
	adminUser   *AdminUserService
	parcels     *ParcelService
}

func setupParcelServices(t *testing.T, name string) *parcelServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Parcel{}, &models.TrackingEvent{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	parcelRepo := repository.NewParcelRepository(db)
	userRepo := repository.NewUserRepository(db)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}

	return &parcelServiceFixture{
		db:          db,
		parcelRepo:  parcelRepo,
		userRepo:    userRepo,
		vendor:      NewVendorService(parcelRepo, userRepo, queueClient),
		customer:    NewCustomerService(parcelRepo, queueClient),
		adminParcel: NewAdminParcelService(parcelRepo, queueClient),
		adminUser:   NewAdminUserService(userRepo),
		parcels:     NewParcelService(&config.Config{}, parcelRepo, userRepo),
	}
}

func (f *parcelServiceFixture) seedUser(t *testing.T, name string, role models.UserRole, status models.UserStatus) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s_%d@example.com", name, time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         role,
		Status:       status,
	}
	if err := f.userRepo.Create(user); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func appErrorMessage(t *testing.T, err error) string {
	t.Helper()
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got: %v", err)
	}
	return appErr.Message
}

func TestVendorCreateParcelComputesCostAndStartsPending(t *testing.T) {
	f := setupParcelServices(t, "vendor_create")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)

	parcel, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "Mirpur 10, Dhaka",
		DeliveryAddress: "Banani, Dhaka",
		ContactNumber:   "01700000000",
		Weight:          3,
		ParcelType:      models.ParcelTypeBox,
	}, models.RoleVendor)
	if err != nil {
		t.Fatalf("CreateParcel error: %v", err)
	}
	if parcel.Status != models.ParcelStatusPending {
		t.Fatalf("expected PENDING, got %s", parcel.Status)
	}
	if !parcel.Cost.Decimal.Equal(decimal.NewFromInt(130)) {
		t.Fatalf("expected cost 130, got %s", parcel.Cost.String())
	}
	if parcel.TrackingID != nil {
		t.Fatalf("tracking id should not be assigned before approval")
	}
}

func TestVendorCreateParcelRejectsNonVendorRole(t *testing.T) {
	f := setupParcelServices(t, "vendor_create_role")
	_, err := f.vendor.CreateParcel(CreateParcelInput{}, models.RoleCustomer)
	if !errors.Is(err, ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got: %v", err)
	}
	if msg := appErrorMessage(t, err); msg != "Unauthorized. Only senders can create parcels." {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestVendorCreateParcelRejectsBannedSender(t *testing.T) {
	f := setupParcelServices(t, "vendor_create_banned")
	sender := f.seedUser(t, "banned_sender", models.RoleVendor, models.UserStatusBanned)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)

	_, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "a",
		DeliveryAddress: "b",
		Weight:          1,
		ParcelType:      models.ParcelTypeDocument,
	}, models.RoleVendor)
	if !errors.Is(err, ErrAccountBanned) {
		t.Fatalf("expected ErrAccountBanned, got: %v", err)
	}
	if msg := appErrorMessage(t, err); msg != "Your account has been banned. Please contact support." {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestParcelLifecycleApproveDeliverReceive(t *testing.T) {
	f := setupParcelServices(t, "lifecycle")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)

	parcel, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "Mirpur 10, Dhaka",
		DeliveryAddress: "Banani, Dhaka",
		Weight:          3,
		ParcelType:      models.ParcelTypeBox,
	}, models.RoleVendor)
	if err != nil {
		t.Fatalf("CreateParcel error: %v", err)
	}

	approved, err := f.adminParcel.ApproveParcel(parcel.ID)
	if err != nil {
		t.Fatalf("ApproveParcel error: %v", err)
	}
	if approved.Status != models.ParcelStatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}
	if approved.TrackingID == nil || *approved.TrackingID == "" {
		t.Fatalf("expected tracking id after approval")
	}
	if len(approved.TrackingEvents) != 1 {
		t.Fatalf("expected 1 tracking event, got %d", len(approved.TrackingEvents))
	}
	if approved.TrackingEvents[0].Location != "Mirpur 10, Dhaka" {
		t.Fatalf("unexpected event location: %s", approved.TrackingEvents[0].Location)
	}
	if approved.TrackingEvents[0].Note != "Parcel approved by admin" {
		t.Fatalf("unexpected event note: %s", approved.TrackingEvents[0].Note)
	}

	// 重复审批被拒绝
	if _, err := f.adminParcel.ApproveParcel(parcel.ID); err == nil {
		t.Fatalf("expected second approval to fail")
	} else if msg := appErrorMessage(t, err); msg != "Parcel is already APPROVED" {
		t.Fatalf("unexpected message: %s", msg)
	}

	delivered, err := f.adminParcel.DeliverParcel(parcel.ID)
	if err != nil {
		t.Fatalf("DeliverParcel error: %v", err)
	}
	if delivered.Status != models.ParcelStatusDelivered {
		t.Fatalf("expected DELIVERED, got %s", delivered.Status)
	}
	if len(delivered.TrackingEvents) != 2 {
		t.Fatalf("expected 2 tracking events, got %d", len(delivered.TrackingEvents))
	}
	if delivered.TrackingEvents[1].Note != "Parcel delivered by admin" {
		t.Fatalf("unexpected event note: %s", delivered.TrackingEvents[1].Note)
	}

	received, err := f.customer.ReceiveParcel(parcel.ID, receiver.ID)
	if err != nil {
		t.Fatalf("ReceiveParcel error: %v", err)
	}
	if received.Status != models.ParcelStatusReceived {
		t.Fatalf("expected RECEIVED, got %s", received.Status)
	}
	if len(received.TrackingEvents) != 3 {
		t.Fatalf("expected 3 tracking events, got %d", len(received.TrackingEvents))
	}
	if received.TrackingEvents[2].Location != "Banani, Dhaka" {
		t.Fatalf("unexpected event location: %s", received.TrackingEvents[2].Location)
	}
	if received.TrackingEvents[2].Note != "Parcel Received by receiver" {
		t.Fatalf("unexpected event note: %s", received.TrackingEvents[2].Note)
	}

	// 终态后管理员无法取消
	if _, err := f.adminParcel.CancelParcel(parcel.ID); err == nil {
		t.Fatalf("expected cancel after receive to fail")
	} else if msg := appErrorMessage(t, err); msg != "Parcel is already RECEIVED and cannot be cancelled" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestVendorCancelOwnPendingParcelWithoutEvent(t *testing.T) {
	f := setupParcelServices(t, "vendor_cancel")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)
	outsider := f.seedUser(t, "outsider", models.RoleVendor, models.UserStatusActive)

	parcel, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "a",
		DeliveryAddress: "b",
		Weight:          1,
		ParcelType:      models.ParcelTypeDocument,
	}, models.RoleVendor)
	if err != nil {
		t.Fatalf("CreateParcel error: %v", err)
	}

	// 非寄件人取消，按不存在处理
	if _, err := f.vendor.CancelParcel(parcel.ID, outsider.ID); !errors.Is(err, ErrParcelNotFound) {
		t.Fatalf("expected ErrParcelNotFound, got: %v", err)
	}

	cancelled, err := f.vendor.CancelParcel(parcel.ID, sender.ID)
	if err != nil {
		t.Fatalf("CancelParcel error: %v", err)
	}
	if cancelled.Status != models.ParcelStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if len(cancelled.TrackingEvents) != 0 {
		t.Fatalf("sender cancel should not append events, got %d", len(cancelled.TrackingEvents))
	}

	if _, err := f.vendor.CancelParcel(parcel.ID, sender.ID); err == nil {
		t.Fatalf("expected second cancel to fail")
	} else if msg := appErrorMessage(t, err); msg != "This parcel is already CANCELLED." {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestCustomerReturnThenVendorAcceptReturn(t *testing.T) {
	f := setupParcelServices(t, "return_flow")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)

	parcel, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "a",
		DeliveryAddress: "b",
		Weight:          1,
		ParcelType:      models.ParcelTypeFragile,
	}, models.RoleVendor)
	if err != nil {
		t.Fatalf("CreateParcel error: %v", err)
	}

	// 未送达不可退回
	if _, err := f.customer.ReturnParcel(parcel.ID, receiver.ID); err == nil {
		t.Fatalf("expected return before delivery to fail")
	} else if msg := appErrorMessage(t, err); msg != "parcel is not in a state to be returned. Current status: PENDING" {
		t.Fatalf("unexpected message: %s", msg)
	}

	if _, err := f.adminParcel.ApproveParcel(parcel.ID); err != nil {
		t.Fatalf("ApproveParcel error: %v", err)
	}
	if _, err := f.adminParcel.DeliverParcel(parcel.ID); err != nil {
		t.Fatalf("DeliverParcel error: %v", err)
	}

	returned, err := f.customer.ReturnParcel(parcel.ID, receiver.ID)
	if err != nil {
		t.Fatalf("ReturnParcel error: %v", err)
	}
	if returned.Status != models.ParcelStatusReturned {
		t.Fatalf("expected RETURNED, got %s", returned.Status)
	}
	last := returned.TrackingEvents[len(returned.TrackingEvents)-1]
	if last.Note != "Parcel Returned by receiver" {
		t.Fatalf("unexpected event note: %s", last.Note)
	}

	eventsBefore := len(returned.TrackingEvents)
	accepted, err := f.vendor.AcceptReturnParcel(parcel.ID, sender.ID)
	if err != nil {
		t.Fatalf("AcceptReturnParcel error: %v", err)
	}
	if accepted.Status != models.ParcelStatusPending {
		t.Fatalf("expected PENDING after accept return, got %s", accepted.Status)
	}
	if len(accepted.TrackingEvents) != eventsBefore {
		t.Fatalf("accept return should not append events, got %d", len(accepted.TrackingEvents))
	}

	if _, err := f.vendor.AcceptReturnParcel(parcel.ID, sender.ID); err == nil {
		t.Fatalf("expected accept return on pending parcel to fail")
	} else if msg := appErrorMessage(t, err); msg != "This parcel is already pending." {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestCustomerReceiveGuards(t *testing.T) {
	f := setupParcelServices(t, "receive_guards")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)
	outsider := f.seedUser(t, "outsider", models.RoleCustomer, models.UserStatusActive)

	parcel, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "a",
		DeliveryAddress: "b",
		Weight:          1,
		ParcelType:      models.ParcelTypeBox,
	}, models.RoleVendor)
	if err != nil {
		t.Fatalf("CreateParcel error: %v", err)
	}

	if _, err := f.customer.ReceiveParcel(parcel.ID, outsider.ID); err == nil {
		t.Fatalf("expected outsider receive to fail")
	} else if msg := appErrorMessage(t, err); msg != "Parcel not found or you are not authorized to confirm this delivery." {
		t.Fatalf("unexpected message: %s", msg)
	}

	if _, err := f.customer.ReceiveParcel(parcel.ID, receiver.ID); err == nil {
		t.Fatalf("expected receive before delivery to fail")
	} else if msg := appErrorMessage(t, err); msg != "This parcel is not DELIVERED yet" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestApproveParcelDetectsConcurrentTransition(t *testing.T) {
	f := setupParcelServices(t, "stale_approve")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)

	parcel, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "a",
		DeliveryAddress: "b",
		Weight:          1,
		ParcelType:      models.ParcelTypeBox,
	}, models.RoleVendor)
	if err != nil {
		t.Fatalf("CreateParcel error: %v", err)
	}

	// 模拟审批进行中状态被其它请求改走
	if err := f.db.Model(&models.Parcel{}).Where("id = ?", parcel.ID).
		Update("status", models.ParcelStatusCancelled).Error; err != nil {
		t.Fatalf("concurrent update failed: %v", err)
	}
	loaded, err := f.adminParcel.GetParcel(parcel.ID)
	if err != nil {
		t.Fatalf("GetParcel error: %v", err)
	}
	if err := f.parcelRepo.TransitionStatus(parcel.ID, models.ParcelStatusPending, map[string]interface{}{
		"status": models.ParcelStatusApproved,
	}, nil); !errors.Is(err, repository.ErrStaleState) {
		t.Fatalf("expected ErrStaleState, got: %v (loaded status %s)", err, loaded.Status)
	}
}

func TestIncomingAndDeliveredParcelScopes(t *testing.T) {
	f := setupParcelServices(t, "receiver_scopes")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)

	statuses := []models.ParcelStatus{
		models.ParcelStatusPending,
		models.ParcelStatusInTransit,
		models.ParcelStatusDelivered,
		models.ParcelStatusReceived,
		models.ParcelStatusCancelled,
	}
	for i, status := range statuses {
		parcel := &models.Parcel{
			SenderID:        sender.ID,
			ReceiverID:      receiver.ID,
			PickupAddress:   "a",
			DeliveryAddress: "b",
			Weight:          float64(i + 1),
			Cost:            models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			ParcelType:      models.ParcelTypeBox,
			Status:          status,
		}
		if err := f.parcelRepo.Create(parcel); err != nil {
			t.Fatalf("seed parcel failed: %v", err)
		}
	}

	incoming, err := f.customer.IncomingParcels(receiver.ID)
	if err != nil {
		t.Fatalf("IncomingParcels error: %v", err)
	}
	if len(incoming) != 2 {
		t.Fatalf("expected 2 incoming parcels, got %d", len(incoming))
	}
	for _, parcel := range incoming {
		switch parcel.Status {
		case models.ParcelStatusDelivered, models.ParcelStatusCancelled, models.ParcelStatusReceived:
			t.Fatalf("incoming list should exclude %s", parcel.Status)
		}
	}

	delivered, err := f.customer.DeliveredParcels(receiver.ID)
	if err != nil {
		t.Fatalf("DeliveredParcels error: %v", err)
	}
	if len(delivered) != 1 || delivered[0].Status != models.ParcelStatusDelivered {
		t.Fatalf("unexpected delivered list: %+v", delivered)
	}
}

func TestGetMyParcelsAttachesPartyNames(t *testing.T) {
	f := setupParcelServices(t, "my_parcels")
	sender := f.seedUser(t, "Alice", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "Bob", models.RoleCustomer, models.UserStatusActive)

	parcel := &models.Parcel{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "a",
		DeliveryAddress: "b",
		Weight:          1,
		Cost:            models.NewMoneyFromDecimal(decimal.NewFromInt(55)),
		ParcelType:      models.ParcelTypeDocument,
		Status:          models.ParcelStatusPending,
	}
	if err := f.parcelRepo.Create(parcel); err != nil {
		t.Fatalf("seed parcel failed: %v", err)
	}

	views, err := f.parcels.GetMyParcels(sender.ID)
	if err != nil {
		t.Fatalf("GetMyParcels error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 parcel, got %d", len(views))
	}
	if views[0].SenderName != "Alice" || views[0].ReceiverName != "Bob" {
		t.Fatalf("unexpected party names: %s / %s", views[0].SenderName, views[0].ReceiverName)
	}

	if _, err := f.parcels.GetParcelByID(parcel.ID, receiver.ID); err != nil {
		t.Fatalf("receiver should access parcel: %v", err)
	}
	outsider := f.seedUser(t, "Mallory", models.RoleCustomer, models.UserStatusActive)
	if _, err := f.parcels.GetParcelByID(parcel.ID, outsider.ID); !errors.Is(err, ErrParcelNotFound) {
		t.Fatalf("expected ErrParcelNotFound for outsider, got: %v", err)
	}
}

func TestAdminBlockAndUnblockUser(t *testing.T) {
	f := setupParcelServices(t, "block_user")
	user := f.seedUser(t, "victim", models.RoleCustomer, models.UserStatusActive)

	blocked, err := f.adminUser.BlockUser(user.ID)
	if err != nil {
		t.Fatalf("BlockUser error: %v", err)
	}
	if blocked.Status != models.UserStatusBlocked {
		t.Fatalf("expected BLOCKED, got %s", blocked.Status)
	}

	if _, err := f.adminUser.BlockUser(user.ID); err == nil {
		t.Fatalf("expected second block to fail")
	} else if msg := appErrorMessage(t, err); msg != "User is already blocked." {
		t.Fatalf("unexpected message: %s", msg)
	}

	active, err := f.adminUser.UnblockUser(user.ID)
	if err != nil {
		t.Fatalf("UnblockUser error: %v", err)
	}
	if active.Status != models.UserStatusActive {
		t.Fatalf("expected ACTIVE, got %s", active.Status)
	}

	if _, err := f.adminUser.UnblockUser(user.ID); err == nil {
		t.Fatalf("expected unblock of active user to fail")
	} else if msg := appErrorMessage(t, err); msg != "User is not blocked." {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestAdminUpdateUserCanBanAndReinstateVendor(t *testing.T) {
	f := setupParcelServices(t, "ban_user")
	vendor := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)
	input := CreateParcelInput{
		SenderID:        vendor.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "a",
		DeliveryAddress: "b",
		Weight:          1,
		ParcelType:      models.ParcelTypeDocument,
	}

	banned := models.UserStatusBanned
	updated, err := f.adminUser.UpdateUser(vendor.ID, UpdateUserInput{Status: &banned})
	if err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}
	if updated.Status != models.UserStatusBanned {
		t.Fatalf("expected BANNED, got %s", updated.Status)
	}

	if _, err := f.vendor.CreateParcel(input, models.RoleVendor); !errors.Is(err, ErrAccountBanned) {
		t.Fatalf("expected ErrAccountBanned, got: %v", err)
	}

	active := models.UserStatusActive
	if _, err := f.adminUser.UpdateUser(vendor.ID, UpdateUserInput{Status: &active}); err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}
	if _, err := f.vendor.CreateParcel(input, models.RoleVendor); err != nil {
		t.Fatalf("CreateParcel after reinstate error: %v", err)
	}

	bad := models.UserStatus("SUSPENDED")
	if _, err := f.adminUser.UpdateUser(vendor.ID, UpdateUserInput{Status: &bad}); !errors.Is(err, ErrUserStatusInvalid) {
		t.Fatalf("expected ErrUserStatusInvalid, got: %v", err)
	}
}

func TestAdminUpdateParcelAssignsTrackingOnFirstApproval(t *testing.T) {
	f := setupParcelServices(t, "update_generic")
	sender := f.seedUser(t, "sender", models.RoleVendor, models.UserStatusActive)
	receiver := f.seedUser(t, "receiver", models.RoleCustomer, models.UserStatusActive)

	parcel, err := f.vendor.CreateParcel(CreateParcelInput{
		SenderID:        sender.ID,
		ReceiverID:      receiver.ID,
		PickupAddress:   "Warehouse 7",
		DeliveryAddress: "b",
		Weight:          2,
		ParcelType:      models.ParcelTypeBox,
	}, models.RoleVendor)
	if err != nil {
		t.Fatalf("CreateParcel error: %v", err)
	}

	status := models.ParcelStatusApproved
	updated, err := f.adminParcel.UpdateParcel(parcel.ID, UpdateParcelInput{Status: &status})
	if err != nil {
		t.Fatalf("UpdateParcel error: %v", err)
	}
	if updated.TrackingID == nil {
		t.Fatalf("expected tracking id after status update to APPROVED")
	}
	if len(updated.TrackingEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(updated.TrackingEvents))
	}
	if updated.TrackingEvents[0].Note != "Parcel approved" {
		t.Fatalf("unexpected default note: %s", updated.TrackingEvents[0].Note)
	}
	if updated.TrackingEvents[0].Location != "Warehouse 7" {
		t.Fatalf("unexpected default location: %s", updated.TrackingEvents[0].Location)
	}

	status = models.ParcelStatusInTransit
	location := "Dhaka hub"
	note := "Departed origin facility"
	moved, err := f.adminParcel.UpdateParcel(parcel.ID, UpdateParcelInput{
		Status:   &status,
		Location: &location,
		Note:     &note,
	})
	if err != nil {
		t.Fatalf("UpdateParcel error: %v", err)
	}
	if moved.Status != models.ParcelStatusInTransit {
		t.Fatalf("expected IN_TRANSIT, got %s", moved.Status)
	}
	if len(moved.TrackingEvents) != 2 {
		t.Fatalf("expected 2 events, got %d", len(moved.TrackingEvents))
	}
	if moved.TrackingEvents[1].Location != "Dhaka hub" || moved.TrackingEvents[1].Note != "Departed origin facility" {
		t.Fatalf("unexpected event: %+v", moved.TrackingEvents[1])
	}

	bad := models.ParcelStatus("TELEPORTED")
	if _, err := f.adminParcel.UpdateParcel(parcel.ID, UpdateParcelInput{Status: &bad}); !errors.Is(err, ErrParcelStatusInvalid) {
		t.Fatalf("expected ErrParcelStatusInvalid, got: %v", err)
	}
}

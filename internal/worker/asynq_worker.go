package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/parcel-next/internal/logger"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/provider"
	"github.com/parcel-next/internal/queue"
	"github.com/parcel-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskParcelStatusEmail, c.handleParcelStatusEmail)
}

func (c *Consumer) handleParcelStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_parcel_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ParcelStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_parcel_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.ParcelID == 0 {
		logger.Debugw("worker_parcel_status_email_skip_invalid_payload", "parcel_id", payload.ParcelID)
		return nil
	}
	parcel, err := c.ParcelRepo.GetByID(payload.ParcelID)
	if err != nil {
		logger.Warnw("worker_parcel_status_email_fetch_parcel_failed", "parcel_id", payload.ParcelID, "error", err)
		return err
	}
	if parcel == nil {
		logger.Debugw("worker_parcel_status_email_skip_parcel_not_found", "parcel_id", payload.ParcelID)
		return nil
	}
	receiverEmail, err := c.ParcelRepo.ResolveReceiverEmailByParcelID(parcel.ID)
	if err != nil {
		logger.Warnw("worker_parcel_status_email_fetch_receiver_failed", "parcel_id", parcel.ID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("worker_parcel_status_email_skip_empty_receiver", "parcel_id", parcel.ID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_parcel_status_email_skip_email_service_nil", "parcel_id", parcel.ID)
		return nil
	}

	status := models.ParcelStatus(strings.TrimSpace(payload.Status))
	if status == "" {
		status = parcel.Status
	}
	trackingID := ""
	if parcel.TrackingID != nil {
		trackingID = *parcel.TrackingID
	}
	input := service.ParcelStatusEmailInput{
		TrackingID:      trackingID,
		Status:          status,
		PickupAddress:   parcel.PickupAddress,
		DeliveryAddress: parcel.DeliveryAddress,
		Cost:            parcel.Cost,
	}
	if err := c.EmailService.SendParcelStatusEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_parcel_status_email_send_failed",
			"parcel_id", parcel.ID,
			"tracking_id", trackingID,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

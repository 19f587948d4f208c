package service

import (
	"github.com/parcel-next/internal/logger"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/queue"
)

// 需要通知收件人的状态
var notifiableParcelStatuses = map[models.ParcelStatus]struct{}{
	models.ParcelStatusApproved:  {},
	models.ParcelStatusDelivered: {},
	models.ParcelStatusReceived:  {},
	models.ParcelStatusReturned:  {},
	models.ParcelStatusCancelled: {},
}

// enqueueParcelStatusEmailTaskIfEligible 推送包裹状态邮件任务。
// 队列未启用或入队失败不影响主流程，仅记录日志。
func enqueueParcelStatusEmailTaskIfEligible(queueClient *queue.Client, parcelID uint, status models.ParcelStatus) {
	if queueClient == nil || !queueClient.Enabled() || parcelID == 0 {
		return
	}
	if _, ok := notifiableParcelStatuses[status]; !ok {
		return
	}
	payload := queue.ParcelStatusEmailPayload{
		ParcelID: parcelID,
		Status:   string(status),
	}
	if err := queueClient.EnqueueParcelStatusEmail(payload); err != nil {
		logger.Warnw("包裹状态邮件任务入队失败",
			"parcel_id", parcelID,
			"status", status,
			"error", err,
		)
	}
}

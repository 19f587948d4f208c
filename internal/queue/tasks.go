package queue

import (
	"encoding/json"

	"github.com/parcel-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskParcelStatusEmail 包裹状态邮件通知任务
	TaskParcelStatusEmail = constants.TaskParcelStatusEmail
)

// ParcelStatusEmailPayload 包裹状态邮件任务载荷
type ParcelStatusEmailPayload struct {
	ParcelID uint   `json:"parcel_id"`
	Status   string `json:"status"`
}

// NewParcelStatusEmailTask 创建包裹状态邮件任务
func NewParcelStatusEmailTask(payload ParcelStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskParcelStatusEmail, body), nil
}

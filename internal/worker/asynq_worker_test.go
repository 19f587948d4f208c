package worker

import (
	"context"
	"testing"

	"github.com/parcel-next/internal/provider"
	"github.com/parcel-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestRegisterNilMux(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	consumer.Register(nil)
}

func TestHandleParcelStatusEmailBadPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskParcelStatusEmail, []byte("{not json"))

	if err := consumer.handleParcelStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should return error")
	}
}

func TestHandleParcelStatusEmailZeroParcelID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskParcelStatusEmail, []byte(`{"parcel_id":0,"status":"APPROVED"}`))

	if err := consumer.handleParcelStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero parcel id should be skipped, got %v", err)
	}
}

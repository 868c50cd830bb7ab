package service

import (
	"context"
	"time"

	"billing/internal/config"
	"billing/internal/model"
	"billing/internal/repository"
	"billing/pkg/idgen"

	"gorm.io/gorm"
)

// EventRecorder 在业务事务内写 outbox；kafka 未启用时不落库
type EventRecorder struct {
	outboxRepo *repository.OutboxRepository
	topic      string
	enabled    bool
}

func NewEventRecorder(db *gorm.DB, cfg *config.Config) *EventRecorder {
	return &EventRecorder{
		outboxRepo: repository.NewOutboxRepository(db),
		topic:      cfg.Kafka.Topic.BillingEvents,
		enabled:    cfg.Kafka.Enabled,
	}
}

func (r *EventRecorder) Record(ctx context.Context, tx *gorm.DB, eventType string, customerID int64, data interface{}) error {
	if r == nil || !r.enabled {
		return nil
	}
	return r.outboxRepo.Enqueue(ctx, tx, r.topic, &model.BillingEvent{
		Key:        idgen.GenerateEventKey(),
		Type:       eventType,
		CustomerID: customerID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
}

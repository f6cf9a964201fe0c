package service

import (
	"context"

	"github.com/ticketanywhere/ticketanywhere/internal/entity"
	"github.com/ticketanywhere/ticketanywhere/internal/rabbitmq"
)

// QueueAdapter adapts rabbitmq.Queue to the ReceiptPublisher interface.
type QueueAdapter struct {
	queue rabbitmq.Queue
}

func NewQueueAdapter(q rabbitmq.Queue) *QueueAdapter {
	return &QueueAdapter{queue: q}
}

func (a *QueueAdapter) Publish(ctx context.Context, receipt *entity.PurchaseReceipt) error {
	if a.queue == nil {
		return nil
	}
	return a.queue.Publish(ctx, receipt)
}

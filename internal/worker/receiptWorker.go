package worker

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
	"github.com/ticketanywhere/ticketanywhere/internal/rabbitmq"
	"github.com/ticketanywhere/ticketanywhere/internal/service"
)

// ReceiptWorker drains the purchase-receipt queue into the recent-receipt
// feed the admin panel reads from.
type ReceiptWorker struct {
	queue    rabbitmq.Queue
	receipts service.ReceiptService
}

func NewReceiptWorker(queue rabbitmq.Queue, receipts service.ReceiptService) *ReceiptWorker {
	return &ReceiptWorker{
		queue:    queue,
		receipts: receipts,
	}
}

func (w *ReceiptWorker) Start(ctx context.Context) error {
	logrus.Info("Receipt worker started")

	return w.queue.Consume(ctx, func(message []byte) error {
		var receipt entity.PurchaseReceipt
		if err := json.Unmarshal(message, &receipt); err != nil {
			// A malformed message will never parse; drop it instead of
			// requeueing forever.
			logrus.Errorf("Discarding malformed receipt message: %v", err)
			return nil
		}

		if err := w.receipts.Record(ctx, &receipt); err != nil {
			logrus.Errorf("Failed to record receipt for ticket %s: %v", receipt.TicketID, err)
			return err
		}

		logrus.WithFields(logrus.Fields{
			"ticket_id": receipt.TicketID,
			"event_id":  receipt.EventID,
			"quantity":  receipt.Quantity,
		}).Debug("Receipt recorded")
		return nil
	})
}

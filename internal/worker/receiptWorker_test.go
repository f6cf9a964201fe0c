package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

// fakeQueue delivers queued messages synchronously to the consumer.
type fakeQueue struct {
	messages [][]byte
	handler  func(message []byte) error
}

func (q *fakeQueue) Publish(ctx context.Context, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	q.messages = append(q.messages, data)
	return nil
}

func (q *fakeQueue) Consume(ctx context.Context, handler func(message []byte) error) error {
	q.handler = handler
	for _, message := range q.messages {
		if err := handler(message); err != nil {
			return err
		}
	}
	return nil
}

func (q *fakeQueue) Close() error { return nil }

type recordingReceipts struct {
	mu       sync.Mutex
	recorded []*entity.PurchaseReceipt
	failWith error
}

func (r *recordingReceipts) Record(ctx context.Context, receipt *entity.PurchaseReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.recorded = append(r.recorded, receipt)
	return nil
}

func (r *recordingReceipts) Recent(ctx context.Context, count int) ([]*entity.PurchaseReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recorded, nil
}

func TestReceiptWorkerRecordsReceipts(t *testing.T) {
	queue := &fakeQueue{}
	receipts := &recordingReceipts{}

	require.NoError(t, queue.Publish(context.Background(), &entity.PurchaseReceipt{
		TicketID: "ticket-1",
		EventID:  "event-1",
		Quantity: 2,
	}))

	worker := NewReceiptWorker(queue, receipts)
	require.NoError(t, worker.Start(context.Background()))

	require.Len(t, receipts.recorded, 1)
	assert.Equal(t, "ticket-1", receipts.recorded[0].TicketID)
	assert.Equal(t, 2, receipts.recorded[0].Quantity)
}

func TestReceiptWorkerDropsMalformedMessages(t *testing.T) {
	queue := &fakeQueue{messages: [][]byte{[]byte("not json")}}
	receipts := &recordingReceipts{}

	worker := NewReceiptWorker(queue, receipts)

	// A malformed message is dropped, not retried.
	require.NoError(t, worker.Start(context.Background()))
	assert.Empty(t, receipts.recorded)
}

func TestReceiptWorkerPropagatesStoreErrors(t *testing.T) {
	queue := &fakeQueue{}
	require.NoError(t, queue.Publish(context.Background(), &entity.PurchaseReceipt{TicketID: "t"}))

	receipts := &recordingReceipts{failWith: errors.New("redis down")}
	worker := NewReceiptWorker(queue, receipts)

	// The handler error reaches the queue so the message is redelivered.
	assert.Error(t, worker.Start(context.Background()))
}

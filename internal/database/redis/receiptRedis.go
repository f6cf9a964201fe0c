package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

const recentReceiptsKey = "receipts:recent"

// ReceiptRepository holds a capped list of the most recent purchase
// receipts, written by the receipt worker and read by the admin panel.
type ReceiptRepository struct {
	client *redis.Client
	limit  int64
}

func NewReceiptRepository(client *redis.Client, limit int) *ReceiptRepository {
	if limit <= 0 {
		limit = 100
	}
	return &ReceiptRepository{client: client, limit: int64(limit)}
}

func (r *ReceiptRepository) Record(ctx context.Context, receipt *entity.PurchaseReceipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, recentReceiptsKey, data)
	pipe.LTrim(ctx, recentReceiptsKey, 0, r.limit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record receipt: %w", err)
	}

	return nil
}

func (r *ReceiptRepository) Recent(ctx context.Context, count int) ([]*entity.PurchaseReceipt, error) {
	if count <= 0 || int64(count) > r.limit {
		count = int(r.limit)
	}

	items, err := r.client.LRange(ctx, recentReceiptsKey, 0, int64(count-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read receipts: %w", err)
	}

	receipts := make([]*entity.PurchaseReceipt, 0, len(items))
	for _, item := range items {
		var receipt entity.PurchaseReceipt
		if err := json.Unmarshal([]byte(item), &receipt); err != nil {
			continue
		}
		receipts = append(receipts, &receipt)
	}

	return receipts, nil
}

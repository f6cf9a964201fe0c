package service

import (
	"context"
	"fmt"

	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

type receiptService struct {
	store ReceiptStore
}

func NewReceiptService(store ReceiptStore) ReceiptService {
	return &receiptService{store: store}
}

func (s *receiptService) Record(ctx context.Context, receipt *entity.PurchaseReceipt) error {
	if err := s.store.Record(ctx, receipt); err != nil {
		return fmt.Errorf("failed to record receipt: %w", err)
	}
	return nil
}

func (s *receiptService) Recent(ctx context.Context, count int) ([]*entity.PurchaseReceipt, error) {
	receipts, err := s.store.Recent(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}

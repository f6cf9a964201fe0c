package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	repository "github.com/ticketanywhere/ticketanywhere/internal/database/postgres"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

// PurchaseTicketRequest is the body of POST /api/tickets. Quantity is
// validated in the service rather than via binding tags so a zero or
// negative quantity maps to the invalid-quantity error, not a generic
// binding failure.
type PurchaseTicketRequest struct {
	EventID  string `json:"eventId" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	Quantity int    `json:"quantity"`
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	eventRepo  repository.EventRepository
	userRepo   repository.UserRepository
	publisher  ReceiptPublisher
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	publisher ReceiptPublisher,
) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

func (s *ticketService) Purchase(ctx context.Context, req *PurchaseTicketRequest) (*entity.Ticket, error) {
	if req.Quantity <= 0 {
		return nil, entity.ErrInvalidQuantity
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	ticket := &entity.Ticket{
		EventID:  req.EventID,
		UserID:   req.UserID,
		Quantity: req.Quantity,
	}

	// The repository serializes the read-check-decrement against the
	// event row; a failed purchase leaves inventory untouched and writes
	// no ticket.
	if err := s.ticketRepo.Purchase(ctx, ticket); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"event_id":  ticket.EventID,
		"user_id":   ticket.UserID,
		"quantity":  ticket.Quantity,
	}).Info("Ticket purchased")

	if s.publisher != nil {
		s.publishReceipt(ctx, ticket, user)
	}

	return ticket, nil
}

// publishReceipt is best-effort: the purchase has already committed, so a
// queue failure is logged and swallowed.
func (s *ticketService) publishReceipt(ctx context.Context, ticket *entity.Ticket, user *entity.User) {
	event, err := s.eventRepo.GetByID(ctx, ticket.EventID)
	if err != nil {
		logrus.Errorf("Failed to load event for receipt: %v", err)
		return
	}

	receipt := &entity.PurchaseReceipt{
		TicketID:    ticket.ID,
		EventID:     event.ID,
		EventTitle:  event.Title,
		UserID:      user.ID,
		UserEmail:   user.Email,
		Quantity:    ticket.Quantity,
		Total:       event.Price * float64(ticket.Quantity),
		PurchasedAt: ticket.PurchaseDate,
	}

	if err := s.publisher.Publish(ctx, receipt); err != nil {
		logrus.Errorf("Failed to publish purchase receipt: %v", err)
	}
}

func (s *ticketService) GetUserTickets(ctx context.Context, userID string) ([]*entity.TicketWithEvent, error) {
	tickets, err := s.ticketRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user tickets: %w", err)
	}
	return tickets, nil
}

func (s *ticketService) GetEventTickets(ctx context.Context, eventID string) ([]*entity.Ticket, error) {
	tickets, err := s.ticketRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event tickets: %w", err)
	}
	return tickets, nil
}

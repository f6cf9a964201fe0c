package service

import (
	"context"

	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id string) (*entity.Event, error)
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type TicketService interface {
	// Purchase validates the request, decrements the event's inventory and
	// appends a ticket to the ledger. Two identical calls each create a
	// separate ticket, purchase is deliberately not idempotent.
	Purchase(ctx context.Context, req *PurchaseTicketRequest) (*entity.Ticket, error)

	GetUserTickets(ctx context.Context, userID string) ([]*entity.TicketWithEvent, error)
	GetEventTickets(ctx context.Context, eventID string) ([]*entity.Ticket, error)
}

type UserService interface {
	// FindOrCreateByEmail is the identity boundary: the first successful
	// external authentication creates the user, later ones find it.
	FindOrCreateByEmail(ctx context.Context, email, name string) (*entity.User, error)

	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]*entity.User, error)
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*entity.User, *entity.Session, error)
	Resolve(ctx context.Context, token string) (*entity.User, error)
	Logout(ctx context.Context, token string) error
}

type ReceiptService interface {
	Record(ctx context.Context, receipt *entity.PurchaseReceipt) error
	Recent(ctx context.Context, count int) ([]*entity.PurchaseReceipt, error)
}

// ReceiptPublisher pushes purchase receipts to the notification queue.
// Implementations must be safe to call concurrently.
type ReceiptPublisher interface {
	Publish(ctx context.Context, receipt *entity.PurchaseReceipt) error
}

// SessionStore abstracts the Redis-backed session repository.
type SessionStore interface {
	Create(ctx context.Context, userID string) (*entity.Session, error)
	Get(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
}

// ReceiptStore abstracts the Redis-backed recent-receipt feed.
type ReceiptStore interface {
	Record(ctx context.Context, receipt *entity.PurchaseReceipt) error
	Recent(ctx context.Context, count int) ([]*entity.PurchaseReceipt, error)
}

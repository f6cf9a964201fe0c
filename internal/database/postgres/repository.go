package repository

import (
	"context"

	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id string) error
}

type TicketRepository interface {
	// Purchase atomically decrements the event's remaining inventory and
	// inserts the ticket row in a single transaction. Returns
	// entity.ErrEventNotFound or entity.ErrNotEnoughTickets without any
	// state change when the decrement cannot be applied.
	Purchase(ctx context.Context, ticket *entity.Ticket) error

	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	GetByUserID(ctx context.Context, userID string) ([]*entity.TicketWithEvent, error)
	GetByEventID(ctx context.Context, eventID string) ([]*entity.Ticket, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
}

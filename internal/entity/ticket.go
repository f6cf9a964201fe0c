package entity

import (
	"time"
)

// Ticket is an immutable purchase receipt. Rows are only ever inserted,
// never updated or deleted.
type Ticket struct {
	ID           string    `json:"id" db:"id"`
	EventID      string    `json:"event_id" db:"event_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Quantity     int       `json:"quantity" db:"quantity"`
	PurchaseDate time.Time `json:"purchase_date" db:"purchase_date"`
}

// TicketWithEvent is a ticket expanded with the live state of its event.
// Event is nil when the referenced event has been deleted since purchase.
type TicketWithEvent struct {
	Ticket
	Event *Event `json:"event"`
}

// PurchaseReceipt is the message published to the receipt queue after a
// successful purchase.
type PurchaseReceipt struct {
	TicketID    string    `json:"ticket_id"`
	EventID     string    `json:"event_id"`
	EventTitle  string    `json:"event_title"`
	UserID      string    `json:"user_id"`
	UserEmail   string    `json:"user_email"`
	Quantity    int       `json:"quantity"`
	Total       float64   `json:"total"`
	PurchasedAt time.Time `json:"purchased_at"`
}

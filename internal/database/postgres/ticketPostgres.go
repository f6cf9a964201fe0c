package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

type ticketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// Purchase runs the inventory decrement and the ticket insert in one
// transaction. The decrement is a conditional write: it only matches when
// the remaining count still covers the requested quantity, so two
// concurrent purchases can never oversell regardless of how many service
// instances share the database.
func (r *ticketRepository) Purchase(ctx context.Context, ticket *entity.Ticket) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE events
		SET tickets_available = tickets_available - $1, updated_at = $2
		WHERE id = $3 AND tickets_available >= $1
	`

	result, err := tx.ExecContext(ctx, query, ticket.Quantity, time.Now(), ticket.EventID)
	if err != nil {
		return fmt.Errorf("failed to decrement inventory: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// The conditional update matched nothing: either the event does
		// not exist or its inventory is short. Re-read to tell the two
		// apart.
		var available int
		err := tx.QueryRowContext(ctx, `SELECT tickets_available FROM events WHERE id = $1`, ticket.EventID).Scan(&available)
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrEventNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check event: %w", err)
		}
		return entity.ErrNotEnoughTickets
	}

	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	ticket.PurchaseDate = time.Now()

	query = `
		INSERT INTO tickets (id, event_id, user_id, quantity, purchase_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = tx.ExecContext(ctx, query,
		ticket.ID,
		ticket.EventID,
		ticket.UserID,
		ticket.Quantity,
		ticket.PurchaseDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	query := `
		SELECT id, event_id, user_id, quantity, purchase_date
		FROM tickets
		WHERE id = $1
	`

	var ticket entity.Ticket
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.UserID,
		&ticket.Quantity,
		&ticket.PurchaseDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &ticket, nil
}

// GetByUserID expands each ticket with the live state of its event. The
// join is a LEFT JOIN: tickets whose event was deleted come back with a
// nil Event rather than being dropped from the listing.
func (r *ticketRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.TicketWithEvent, error) {
	query := `
		SELECT
			t.id, t.event_id, t.user_id, t.quantity, t.purchase_date,
			e.id, e.title, e.description, e.date, e.location, e.price, e.tickets_available, e.created_at, e.updated_at
		FROM tickets t
		LEFT JOIN events e ON t.event_id = e.id
		WHERE t.user_id = $1
		ORDER BY t.purchase_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]*entity.TicketWithEvent, 0)
	for rows.Next() {
		var t entity.TicketWithEvent
		var (
			eventID          sql.NullString
			title            sql.NullString
			description      sql.NullString
			date             sql.NullTime
			location         sql.NullString
			price            sql.NullFloat64
			ticketsAvailable sql.NullInt64
			createdAt        sql.NullTime
			updatedAt        sql.NullTime
		)

		err := rows.Scan(
			&t.ID,
			&t.EventID,
			&t.UserID,
			&t.Quantity,
			&t.PurchaseDate,
			&eventID,
			&title,
			&description,
			&date,
			&location,
			&price,
			&ticketsAvailable,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}

		if eventID.Valid {
			t.Event = &entity.Event{
				ID:               eventID.String,
				Title:            title.String,
				Description:      description.String,
				Date:             date.Time,
				Location:         location.String,
				Price:            price.Float64,
				TicketsAvailable: int(ticketsAvailable.Int64),
				CreatedAt:        createdAt.Time,
				UpdatedAt:        updatedAt.Time,
			}
		}

		tickets = append(tickets, &t)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) GetByEventID(ctx context.Context, eventID string) ([]*entity.Ticket, error) {
	query := `
		SELECT id, event_id, user_id, quantity, purchase_date
		FROM tickets
		WHERE event_id = $1
		ORDER BY purchase_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]*entity.Ticket, 0)
	for rows.Next() {
		var t entity.Ticket
		err := rows.Scan(&t.ID, &t.EventID, &t.UserID, &t.Quantity, &t.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &t)
	}

	return tickets, rows.Err()
}

package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// Ticket errors
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrNotEnoughTickets = errors.New("not enough tickets available")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email")

	// Auth errors
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden operation")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)

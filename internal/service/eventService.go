package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/ticketanywhere/ticketanywhere/internal/database/postgres"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

// CreateEventRequest carries the fields for a new event. Price and
// TicketsAvailable are pointers so a legitimate zero passes the required
// check.
type CreateEventRequest struct {
	Title            string    `json:"title" binding:"required,min=1,max=255"`
	Description      string    `json:"description" binding:"max=2000"`
	Date             time.Time `json:"date" binding:"required"`
	Location         string    `json:"location" binding:"max=255"`
	Price            *float64  `json:"price" binding:"required,gte=0"`
	TicketsAvailable *int      `json:"tickets_available" binding:"required,gte=0"`
}

type UpdateEventRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Date             *time.Time `json:"date,omitempty"`
	Location         *string    `json:"location,omitempty"`
	Price            *float64   `json:"price,omitempty"`
	TicketsAvailable *int       `json:"tickets_available,omitempty"`
}

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error) {
	if req.Price == nil || *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", entity.ErrInvalidInput)
	}
	if req.TicketsAvailable == nil || *req.TicketsAvailable < 0 {
		return nil, fmt.Errorf("%w: tickets_available must be a non-negative integer", entity.ErrInvalidInput)
	}

	event := &entity.Event{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Location:         req.Location,
		Price:            *req.Price,
		TicketsAvailable: *req.TicketsAvailable,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*entity.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", entity.ErrInvalidInput)
		}
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be a non-negative number", entity.ErrInvalidInput)
		}
		event.Price = *req.Price
	}
	if req.TicketsAvailable != nil {
		if *req.TicketsAvailable < 0 {
			return nil, fmt.Errorf("%w: tickets_available must be a non-negative integer", entity.ErrInvalidInput)
		}
		event.TicketsAvailable = *req.TicketsAvailable
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
	"github.com/ticketanywhere/ticketanywhere/internal/service"
)

const testCookie = "ta_session"

// Stub services: each test drives the handler through canned behavior
// instead of a database.

type stubEventService struct {
	events map[string]*entity.Event
}

func (s *stubEventService) CreateEvent(ctx context.Context, req *service.CreateEventRequest) (*entity.Event, error) {
	event := &entity.Event{
		ID:               "event-1",
		Title:            req.Title,
		Date:             req.Date,
		Price:            *req.Price,
		TicketsAvailable: *req.TicketsAvailable,
	}
	s.events[event.ID] = event
	return event, nil
}

func (s *stubEventService) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	return event, nil
}

func (s *stubEventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	all := make([]*entity.Event, 0, len(s.events))
	for _, event := range s.events {
		all = append(all, event)
	}
	return all, nil
}

func (s *stubEventService) UpdateEvent(ctx context.Context, id string, req *service.UpdateEventRequest) (*entity.Event, error) {
	return s.GetEvent(ctx, id)
}

func (s *stubEventService) DeleteEvent(ctx context.Context, id string) error {
	if _, ok := s.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

type stubTicketService struct {
	purchase func(req *service.PurchaseTicketRequest) (*entity.Ticket, error)
}

func (s *stubTicketService) Purchase(ctx context.Context, req *service.PurchaseTicketRequest) (*entity.Ticket, error) {
	return s.purchase(req)
}

func (s *stubTicketService) GetUserTickets(ctx context.Context, userID string) ([]*entity.TicketWithEvent, error) {
	return []*entity.TicketWithEvent{}, nil
}

func (s *stubTicketService) GetEventTickets(ctx context.Context, eventID string) ([]*entity.Ticket, error) {
	return []*entity.Ticket{}, nil
}

type stubReceiptService struct{}

func (s *stubReceiptService) Record(ctx context.Context, receipt *entity.PurchaseReceipt) error {
	return nil
}

func (s *stubReceiptService) Recent(ctx context.Context, count int) ([]*entity.PurchaseReceipt, error) {
	return []*entity.PurchaseReceipt{}, nil
}

type stubAuthService struct {
	users map[string]*entity.User
}

func (s *stubAuthService) Login(ctx context.Context, req *service.LoginRequest) (*entity.User, *entity.Session, error) {
	user := &entity.User{ID: "user-1", Email: req.Email, Name: req.Name, Role: entity.RoleCustomer}
	session := &entity.Session{Token: "fresh-token", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	s.users[session.Token] = user
	return user, session, nil
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return user, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	delete(s.users, token)
	return nil
}

type routerFixture struct {
	router *gin.Engine
	events *stubEventService
	ticket *stubTicketService
	auth   *stubAuthService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	events := &stubEventService{events: make(map[string]*entity.Event)}
	ticket := &stubTicketService{
		purchase: func(req *service.PurchaseTicketRequest) (*entity.Ticket, error) {
			return &entity.Ticket{
				ID:           "ticket-1",
				EventID:      req.EventID,
				UserID:       req.UserID,
				Quantity:     req.Quantity,
				PurchaseDate: time.Now(),
			}, nil
		},
	}
	auth := &stubAuthService{users: map[string]*entity.User{
		"admin-token":    {ID: "admin-1", Email: "boss@example.com", Role: entity.RoleAdministrator},
		"customer-token": {ID: "cust-1", Email: "kim@example.com", Role: entity.RoleCustomer},
	}}

	cfg := RouterConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		CookieName:     testCookie,
		TimeoutSeconds: 5,
	}

	router := InitRoutes(
		cfg,
		NewEventHandler(events),
		NewTicketHandler(ticket, &stubReceiptService{}),
		NewUserHandler(&stubAuthService{users: auth.users}, testCookie, 3600, false),
		auth,
	)

	return &routerFixture{router: router, events: events, ticket: ticket, auth: auth}
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestPurchaseEndpointStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "success", err: nil, wantStatus: http.StatusCreated},
		{name: "event missing", err: entity.ErrEventNotFound, wantStatus: http.StatusNotFound},
		{name: "user missing", err: entity.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "insufficient inventory", err: entity.ErrNotEnoughTickets, wantStatus: http.StatusConflict},
		{name: "invalid quantity", err: entity.ErrInvalidQuantity, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			if tt.err != nil {
				f.ticket.purchase = func(req *service.PurchaseTicketRequest) (*entity.Ticket, error) {
					return nil, tt.err
				}
			}

			w := f.do(t, http.MethodPost, "/api/tickets", "", gin.H{
				"eventId":  "event-1",
				"userId":   "user-1",
				"quantity": 2,
			})
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestPurchaseEndpointRejectsMalformedBody(t *testing.T) {
	f := newRouterFixture(t)

	// Missing required references fails binding before the service runs.
	w := f.do(t, http.MethodPost, "/api/tickets", "", gin.H{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = f.do(t, http.MethodGet, "/api/events/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventAdminGate(t *testing.T) {
	body := gin.H{
		"title":             "Launch Party",
		"date":              time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"price":             10,
		"tickets_available": 50,
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "anonymous", token: "", wantStatus: http.StatusUnauthorized},
		{name: "customer", token: "customer-token", wantStatus: http.StatusForbidden},
		{name: "administrator", token: "admin-token", wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			w := f.do(t, http.MethodPost, "/api/events", tt.token, body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDeleteEventRequiresAdmin(t *testing.T) {
	f := newRouterFixture(t)
	f.events.events["event-1"] = &entity.Event{ID: "event-1", Title: "X"}

	w := f.do(t, http.MethodDelete, "/api/events/event-1", "customer-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodDelete, "/api/events/event-1", "admin-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, "/api/events/event-1", "admin-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCurrentUser(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/auth/current_user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/auth/current_user", "customer-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "kim@example.com", user.Email)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email": "kim@example.com",
		"name":  "Kim",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Equal(t, "fresh-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdminReceiptsGate(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/admin/receipts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/admin/receipts", "admin-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSUnknownOrigin(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

package service

import (
	"context"

	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

// LoginRequest carries an identity already verified by the external
// provider; the service itself never sees credentials.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"max=255"`
}

type authService struct {
	users    UserService
	sessions SessionStore
}

func NewAuthService(users UserService, sessions SessionStore) AuthService {
	return &authService{users: users, sessions: sessions}
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*entity.User, *entity.Session, error) {
	user, err := s.users.FindOrCreateByEmail(ctx, req.Email, req.Name)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, entity.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.users.GetUserByID(ctx, session.UserID)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

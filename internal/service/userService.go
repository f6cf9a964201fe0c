package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	repository "github.com/ticketanywhere/ticketanywhere/internal/database/postgres"
	"github.com/ticketanywhere/ticketanywhere/internal/entity"
)

type userService struct {
	userRepo    repository.UserRepository
	adminEmails map[string]struct{}
}

func NewUserService(userRepo repository.UserRepository, adminEmails []string) UserService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(email)] = struct{}{}
	}
	return &userService{userRepo: userRepo, adminEmails: admins}
}

func (s *userService) FindOrCreateByEmail(ctx context.Context, email, name string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, entity.ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, entity.ErrUserNotFound) {
		return nil, err
	}

	role := entity.RoleCustomer
	if _, ok := s.adminEmails[email]; ok {
		role = entity.RoleAdministrator
	}

	user = &entity.User{
		Email: email,
		Name:  name,
		Role:  role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent first login may have created the row between the
		// lookup and the insert; the unique email constraint makes the
		// retry safe.
		existing, lookupErr := s.userRepo.GetByEmail(ctx, email)
		if lookupErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

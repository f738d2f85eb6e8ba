package service

import (
	"context"
	"errors"
	"fmt"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
	"behaviorbank-backend/internal/security"
)

type userService struct {
	userRepo repository.UserRepository
	auditSvc AuditService
}

func NewUserService(userRepo repository.UserRepository, auditSvc AuditService) UserService {
	return &userService{userRepo: userRepo, auditSvc: auditSvc}
}

func (s *userService) CreateUser(ctx context.Context, actorID int32, name, pin string, role domain.UserRole) (*domain.User, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(pin) < 4 {
		return nil, fmt.Errorf("pin must be at least 4 digits")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	if _, err := s.userRepo.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("user %q already exists", name)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	pinHash, err := security.HashPin(pin)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     name,
		Role:     role,
		PinHash:  pinHash,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, domain.AuditActionCreateUser, &user.ID, map[string]string{
		"name": name,
		"role": string(role),
	})
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

package service

import (
	"context"
	"strconv"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
	"behaviorbank-backend/internal/security"
)

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
	auditSvc     AuditService
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager, auditSvc AuditService) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		auditSvc:     auditSvc,
	}
}

func (s *authService) Login(ctx context.Context, identifier, pin string) (*domain.User, string, error) {
	var (
		user *domain.User
		err  error
	)
	if id, convErr := strconv.Atoi(identifier); convErr == nil {
		user, err = s.userRepo.GetByID(ctx, int32(id))
	} else {
		user, err = s.userRepo.GetByName(ctx, identifier)
	}
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", domain.ErrUserInactive
	}

	if !security.VerifyPin(pin, user.PinHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.auditSvc.Record(ctx, user.ID, domain.AuditActionLogin, nil, nil)
	return user, token, nil
}

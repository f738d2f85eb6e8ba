package service

import (
	"context"

	"github.com/google/uuid"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/logger"
	"behaviorbank-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// requestIDKey matches the key set by the HTTP request-id middleware.
type requestIDKey struct{}

// RequestIDKey is the context key under which the request id travels.
var RequestIDKey = requestIDKey{}

func (s *auditService) Record(ctx context.Context, actorID int32, action string, targetUserID *int32, details map[string]string) {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	entry := &domain.AuditEntry{
		RequestID:    requestID,
		ActorID:      actorID,
		Action:       action,
		TargetUserID: targetUserID,
		Details:      details,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		// Audit is a side channel; the mutation it describes already
		// happened and must not be rolled back over a logging failure.
		logger.Error("failed to write audit record", "action", action, "actor_id", actorID, "error", err)
	}
}

func (s *auditService) ListByActor(ctx context.Context, actorID int32, limit int32) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListByActor(ctx, actorID, limit)
}

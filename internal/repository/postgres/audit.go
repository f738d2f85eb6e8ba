package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}
	query := `INSERT INTO audit_log (request_id, actor_id, action, target_user_id, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, now()) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, entry.RequestID, entry.ActorID, entry.Action, entry.TargetUserID, details).
		Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditRepository) ListByActor(ctx context.Context, actorID int32, limit int32) ([]domain.AuditEntry, error) {
	query := `SELECT id, COALESCE(request_id, ''), actor_id, action, target_user_id, details, created_at
	          FROM audit_log WHERE actor_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, actorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var (
			e       domain.AuditEntry
			details []byte
		)
		if err := rows.Scan(&e.ID, &e.RequestID, &e.ActorID, &e.Action, &e.TargetUserID, &details, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

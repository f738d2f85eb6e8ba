package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, role, pin_hash, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, now(), now()) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query, user.Name, user.Role, user.PinHash, user.IsActive).
		Scan(&user.ID, &user.CreatedOn, &user.UpdatedOn)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE name = $1`, name)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, name, role, pin_hash, is_active, created_on, updated_on FROM users ` + where
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Role, &user.PinHash, &user.IsActive, &user.CreatedOn, &user.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, role, pin_hash, is_active, created_on, updated_on FROM users ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.PinHash, &u.IsActive, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET name=$1, role=$2, pin_hash=$3, is_active=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Role, user.PinHash, user.IsActive, time.Now(), user.ID)
	return err
}

// Package users — repository.go отвечает за все операции с таблицей users в БД.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"balabol/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create добавляет нового пользователя с ролью user.
func (r *Repository) Create(ctx context.Context, userTgID int64, fullName, username string) (*User, error) {
	query := `
		INSERT INTO users (user_tg_id, full_name, username, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_tg_id, full_name, username, role, created_at, updated_at
	`
	var u User
	err := r.db.QueryRow(ctx, query, userTgID, fullName, username, RoleUser).Scan(
		&u.ID, &u.UserTgID, &u.FullName, &u.Username, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return &u, nil
}

// GetByTgID возвращает пользователя по Telegram ID.
// Если не найден — common.ErrUserNotFound.
func (r *Repository) GetByTgID(ctx context.Context, userTgID int64) (*User, error) {
	query := `
		SELECT id, user_tg_id, full_name, username, role, created_at, updated_at
		FROM users
		WHERE user_tg_id = $1
	`
	var u User
	err := r.db.QueryRow(ctx, query, userTgID).Scan(
		&u.ID, &u.UserTgID, &u.FullName, &u.Username, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя (user_tg_id=%d): %w", userTgID, err)
	}
	return &u, nil
}

// UpdateName меняет отображаемое имя.
func (r *Repository) UpdateName(ctx context.Context, userTgID int64, fullName string) error {
	query := `UPDATE users SET full_name = $2, updated_at = NOW() WHERE user_tg_id = $1`
	if _, err := r.db.Exec(ctx, query, userTgID, fullName); err != nil {
		return fmt.Errorf("ошибка обновления имени: %w", err)
	}
	return nil
}

// UpdateRole меняет роль пользователя.
func (r *Repository) UpdateRole(ctx context.Context, userTgID int64, role Role) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE user_tg_id = $1`
	if _, err := r.db.Exec(ctx, query, userTgID, role); err != nil {
		return fmt.Errorf("ошибка обновления роли: %w", err)
	}
	return nil
}

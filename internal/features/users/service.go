// Package users — service.go содержит бизнес-логику работы с пользователями:
// регистрацию, смену имени и политику ролей.
package users

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"balabol/internal/common"
	"balabol/internal/config"
)

// Repo — операции с хранилищем пользователей, нужные сервису.
// Интерфейс здесь, чтобы в тестах подставлять мок вместо Postgres.
type Repo interface {
	Create(ctx context.Context, userTgID int64, fullName, username string) (*User, error)
	GetByTgID(ctx context.Context, userTgID int64) (*User, error)
	UpdateName(ctx context.Context, userTgID int64, fullName string) error
	UpdateRole(ctx context.Context, userTgID int64, role Role) error
}

// Service управляет пользователями и отвечает на вопросы о правах.
type Service struct {
	repo Repo
	cfg  *config.Config
}

// NewService создаёт новый сервис пользователей.
func NewService(repo Repo, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Register регистрирует пользователя при первом /start.
// Возвращает пользователя и признак «уже был зарегистрирован».
func (s *Service) Register(ctx context.Context, userTgID int64, fullName, username string) (*User, bool, error) {
	existing, err := s.repo.GetByTgID(ctx, userTgID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, common.ErrUserNotFound) {
		return nil, false, err
	}

	u, err := s.repo.Create(ctx, userTgID, fullName, username)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка регистрации: %w", err)
	}

	log.WithFields(log.Fields{
		"user_tg_id": userTgID,
		"username":   username,
	}).Info("Новый пользователь зарегистрирован")

	return u, false, nil
}

// Get возвращает пользователя по Telegram ID.
func (s *Service) Get(ctx context.Context, userTgID int64) (*User, error) {
	return s.repo.GetByTgID(ctx, userTgID)
}

// Rename меняет отображаемое имя пользователя.
func (s *Service) Rename(ctx context.Context, userTgID int64, newName string) error {
	return s.repo.UpdateName(ctx, userTgID, newName)
}

// IsSuperuser — единственная проверка на суперюзера во всём боте.
// Это сравнение личностей, а не ролей: суперюзер может быть вообще
// не зарегистрирован.
func (s *Service) IsSuperuser(userTgID int64) bool {
	return s.cfg.IsSuperuser(userTgID)
}

// CanCurate отвечает, можно ли пользователю вести словарь и обсиралки.
// Суперюзер может всегда; незарегистрированный получает ErrNotRegistered.
func (s *Service) CanCurate(ctx context.Context, userTgID int64) (bool, error) {
	if s.IsSuperuser(userTgID) {
		return true, nil
	}
	u, err := s.repo.GetByTgID(ctx, userTgID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return false, common.ErrNotRegistered
		}
		return false, err
	}
	return u.CanCurate(), nil
}

// Promote повышает зарегистрированного пользователя до модератора.
// Повышение модератора — отказ без изменений (common.ErrAlreadyModerator).
func (s *Service) Promote(ctx context.Context, targetTgID int64) (*User, error) {
	u, err := s.repo.GetByTgID(ctx, targetTgID)
	if err != nil {
		return nil, err
	}
	if u.Role == RoleModerator {
		return nil, common.ErrAlreadyModerator
	}
	if err := s.repo.UpdateRole(ctx, targetTgID, RoleModerator); err != nil {
		return nil, err
	}
	u.Role = RoleModerator

	log.WithField("user_tg_id", targetTgID).Info("Пользователь повышен до модератора")
	return u, nil
}

// Demote понижает модератора до обычного пользователя.
// Понижение обычного пользователя — отказ без изменений (common.ErrAlreadyUser).
func (s *Service) Demote(ctx context.Context, targetTgID int64) (*User, error) {
	u, err := s.repo.GetByTgID(ctx, targetTgID)
	if err != nil {
		return nil, err
	}
	if u.Role == RoleUser {
		return nil, common.ErrAlreadyUser
	}
	if err := s.repo.UpdateRole(ctx, targetTgID, RoleUser); err != nil {
		return nil, err
	}
	u.Role = RoleUser

	log.WithField("user_tg_id", targetTgID).Info("Пользователь понижен")
	return u, nil
}

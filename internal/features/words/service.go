// Package words — service.go содержит бизнес-логику словаря:
// добавление с проверкой дубликатов, удаление по номеру, случайный выбор.
package words

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"balabol/internal/common"
)

// Repo — операции с хранилищем слов, нужные сервису.
type Repo interface {
	Create(ctx context.Context, text string, authorTgID int64) (*Word, error)
	GetByID(ctx context.Context, id int64) (*Word, error)
	GetByText(ctx context.Context, text string) (*Word, error)
	List(ctx context.Context) ([]*Word, error)
	Delete(ctx context.Context, id int64) error
	Random(ctx context.Context) (*Word, error)
}

// Service управляет словарём.
type Service struct {
	repo Repo
	// enforceUnique — отклонять ли дубликаты. Управляется флагом WORDS_UNIQUE.
	enforceUnique bool
}

// NewService создаёт новый сервис словаря.
func NewService(repo Repo, enforceUnique bool) *Service {
	return &Service{repo: repo, enforceUnique: enforceUnique}
}

// Add добавляет слово от имени автора.
// Пустой текст — common.ErrWordEmpty; точный дубликат при включённой
// проверке — common.ErrWordExists, вторая строка не создаётся.
func (s *Service) Add(ctx context.Context, authorTgID int64, text string) (*Word, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrWordEmpty
	}

	if s.enforceUnique {
		_, err := s.repo.GetByText(ctx, text)
		if err == nil {
			return nil, common.ErrWordExists
		}
		if !errors.Is(err, common.ErrWordNotFound) {
			return nil, err
		}
	}

	w, err := s.repo.Create(ctx, text, authorTgID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"word_id":      w.ID,
		"author_tg_id": authorTgID,
	}).Info("Слово добавлено")

	return w, nil
}

// Delete удаляет слово по номеру.
// Если слова нет — common.ErrWordNotFound.
func (s *Service) Delete(ctx context.Context, id int64) (*Word, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	log.WithField("word_id", id).Info("Слово удалено")
	return w, nil
}

// List возвращает весь словарь.
func (s *Service) List(ctx context.Context) ([]*Word, error) {
	return s.repo.List(ctx)
}

// Random возвращает равномерно случайное слово всего словаря.
func (s *Service) Random(ctx context.Context) (*Word, error) {
	return s.repo.Random(ctx)
}

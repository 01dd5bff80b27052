// Package triggers — repository.go отвечает за все операции с таблицей
// trigger_groups в БД. Слова-ответы лежат в колонке TEXT[] и только
// дописываются через array_append.
package triggers

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

// Create создаёт обсиралку с пустым списком слов.
func (r *Repository) Create(ctx context.Context, phrase string, authorTgID int64) (*TriggerGroup, error) {
	query := `
		INSERT INTO trigger_groups (phrase, author_tg_id)
		VALUES ($1, $2)
		RETURNING id, phrase, words, author_tg_id, created_at
	`
	var g TriggerGroup
	err := r.db.QueryRow(ctx, query, phrase, authorTgID).Scan(
		&g.ID, &g.Phrase, &g.Words, &g.AuthorTgID, &g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания обсиралки: %w", err)
	}
	return &g, nil
}

// List возвращает все обсиралки по возрастанию номера.
func (r *Repository) List(ctx context.Context) ([]*TriggerGroup, error) {
	query := `SELECT id, phrase, words, author_tg_id, created_at FROM trigger_groups ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса обсиралок: %w", err)
	}
	defer rows.Close()

	var out []*TriggerGroup
	for rows.Next() {
		var g TriggerGroup
		if err := rows.Scan(&g.ID, &g.Phrase, &g.Words, &g.AuthorTgID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// GetByPhrase ищет обсиралку по точному совпадению фразы.
// Если нет — common.ErrTriggerNotFound.
func (r *Repository) GetByPhrase(ctx context.Context, phrase string) (*TriggerGroup, error) {
	query := `SELECT id, phrase, words, author_tg_id, created_at FROM trigger_groups WHERE phrase = $1 LIMIT 1`
	var g TriggerGroup
	err := r.db.QueryRow(ctx, query, phrase).Scan(
		&g.ID, &g.Phrase, &g.Words, &g.AuthorTgID, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrTriggerNotFound
		}
		return nil, fmt.Errorf("ошибка поиска обсиралки (%q): %w", phrase, err)
	}
	return &g, nil
}

// AppendWord дописывает слово в конец списка обсиралки.
func (r *Repository) AppendWord(ctx context.Context, id int64, word string) error {
	query := `UPDATE trigger_groups SET words = array_append(words, $2) WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, word)
	if err != nil {
		return fmt.Errorf("ошибка дополнения обсиралки (id=%d): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrTriggerNotFound
	}
	return nil
}

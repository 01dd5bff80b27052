// Package words — repository.go отвечает за все операции с таблицей words в БД.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package words

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

// Create добавляет слово и возвращает его с выданным номером.
func (r *Repository) Create(ctx context.Context, text string, authorTgID int64) (*Word, error) {
	query := `
		INSERT INTO words (word, author_tg_id)
		VALUES ($1, $2)
		RETURNING id, word, author_tg_id, created_at
	`
	var w Word
	err := r.db.QueryRow(ctx, query, text, authorTgID).Scan(
		&w.ID, &w.Word, &w.AuthorTgID, &w.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания слова: %w", err)
	}
	return &w, nil
}

// GetByID возвращает слово по номеру. Если нет — common.ErrWordNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Word, error) {
	query := `SELECT id, word, author_tg_id, created_at FROM words WHERE id = $1`
	var w Word
	err := r.db.QueryRow(ctx, query, id).Scan(&w.ID, &w.Word, &w.AuthorTgID, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrWordNotFound
		}
		return nil, fmt.Errorf("ошибка чтения слова (id=%d): %w", id, err)
	}
	return &w, nil
}

// GetByText ищет слово по точному тексту. Если нет — common.ErrWordNotFound.
func (r *Repository) GetByText(ctx context.Context, text string) (*Word, error) {
	query := `SELECT id, word, author_tg_id, created_at FROM words WHERE word = $1 LIMIT 1`
	var w Word
	err := r.db.QueryRow(ctx, query, text).Scan(&w.ID, &w.Word, &w.AuthorTgID, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrWordNotFound
		}
		return nil, fmt.Errorf("ошибка поиска слова (%q): %w", text, err)
	}
	return &w, nil
}

// List возвращает все слова по возрастанию номера.
func (r *Repository) List(ctx context.Context) ([]*Word, error) {
	query := `SELECT id, word, author_tg_id, created_at FROM words ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса слов: %w", err)
	}
	defer rows.Close()

	var out []*Word
	for rows.Next() {
		var w Word
		if err := rows.Scan(&w.ID, &w.Word, &w.AuthorTgID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// Delete удаляет слово по номеру.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления слова (id=%d): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrWordNotFound
	}
	return nil
}

// Random возвращает одно слово, равномерно случайное по всему словарю.
// Равномерность обеспечивает ORDER BY RANDOM() самого Postgres.
// Если словарь пуст — common.ErrNoWords.
func (r *Repository) Random(ctx context.Context) (*Word, error) {
	query := `SELECT id, word, author_tg_id, created_at FROM words ORDER BY RANDOM() LIMIT 1`
	var w Word
	err := r.db.QueryRow(ctx, query).Scan(&w.ID, &w.Word, &w.AuthorTgID, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNoWords
		}
		return nil, fmt.Errorf("ошибка выбора случайного слова: %w", err)
	}
	return &w, nil
}

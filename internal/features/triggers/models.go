// Package triggers управляет обсиралками: хранимая фраза-триггер плюс
// пополняемый список слов-ответов. Точное совпадение сообщения с фразой
// заставляет бота ответить случайным словом из списка.
// models.go описывает структуры данных для работы с таблицей trigger_groups.
package triggers

import "time"

// TriggerGroup представляет одну обсиралку.
// Список слов только растёт: отдельные слова не редактируются и не
// удаляются, сами обсиралки тоже не удаляются.
type TriggerGroup struct {
	ID         int64     `db:"id"`           // Номер обсиралки (последовательность БД)
	Phrase     string    `db:"phrase"`       // Фраза-триггер, сравнивается точно
	Words      []string  `db:"words"`        // Слова-ответы, порядок добавления
	AuthorTgID int64     `db:"author_tg_id"` // Telegram ID модератора-автора
	CreatedAt  time.Time `db:"created_at"`   // Когда создана
}

// Package words управляет общим словарём бота — словами, которые он
// случайно вбрасывает в разговор.
// models.go описывает структуры данных для работы с таблицей words.
package words

import "time"

// Word представляет одно слово словаря.
// Номер (ID) выдаёт база; по нему слово удаляют. AuthorTgID — кто добавил,
// это атрибуция, а не владение: удалять может любой модератор.
type Word struct {
	ID         int64     `db:"id"`           // Номер слова (последовательность БД)
	Word       string    `db:"word"`         // Текст слова
	AuthorTgID int64     `db:"author_tg_id"` // Telegram ID модератора-автора
	CreatedAt  time.Time `db:"created_at"`   // Когда добавлено
}

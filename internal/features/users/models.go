// Package users управляет пользователями бота: регистрацией, именами и ролями.
// models.go описывает структуры данных для работы с таблицей users.
package users

import "time"

// Role — роль пользователя. Ролей две: обычный пользователь и модератор.
// Назначает и снимает роль только суперюзер (см. config.IsSuperuser).
type Role string

const (
	// RoleUser — обычный участник, может только болтать и менять себе имя
	RoleUser Role = "user"
	// RoleModerator — может вести словарь и обсиралки
	RoleModerator Role = "moderator"
)

// User представляет зарегистрированного пользователя.
// Запись создаётся при первом /start и никогда не удаляется.
type User struct {
	ID        int64     `db:"id"`         // Автоинкрементный ID записи в БД
	UserTgID  int64     `db:"user_tg_id"` // Telegram user ID (уникальный)
	FullName  string    `db:"full_name"`  // Отображаемое имя, пользователь может менять
	Username  string    `db:"username"`   // @username на момент регистрации, дальше не трогаем
	Role      Role      `db:"role"`       // user | moderator
	CreatedAt time.Time `db:"created_at"` // Когда запись создана
	UpdatedAt time.Time `db:"updated_at"` // Последнее обновление записи
}

// CanCurate отвечает, может ли пользователь вести контент
// (слова и обсиралки). Право есть у всех, кроме обычных пользователей.
func (u *User) CanCurate() bool {
	return u.Role != RoleUser
}

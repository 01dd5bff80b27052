// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки пользователей и ролей
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrNotRegistered — пользователь ещё не написал /start
	ErrNotRegistered = errors.New("пользователь не зарегистрирован")
	// ErrAlreadyModerator — цель уже модератор
	ErrAlreadyModerator = errors.New("этот пользователь уже имеет роль модератора")
	// ErrAlreadyUser — цель уже обычный пользователь
	ErrAlreadyUser = errors.New("этот пользователь уже имеет роль пользователя")
)

// Ошибки словаря
var (
	// ErrWordExists — такое слово уже есть в базе
	ErrWordExists = errors.New("такое слово уже добавлено")
	// ErrWordNotFound — слова с таким номером нет
	ErrWordNotFound = errors.New("слова с таким номером нет")
	// ErrWordEmpty — пустое слово добавлять нельзя
	ErrWordEmpty = errors.New("слово не может быть пустым")
	// ErrNoWords — в базе вообще нет слов
	ErrNoWords = errors.New("в базе нет ни одного слова")
)

// Ошибки обсиралок
var (
	// ErrTriggerNotFound — обсиралки с таким номером нет
	ErrTriggerNotFound = errors.New("обсиралки с таким номером нет")
	// ErrNoTriggerWords — в обсиралке пока нет слов
	ErrNoTriggerWords = errors.New("в этой обсиралке пока нет слов")
)

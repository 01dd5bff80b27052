// Package testutil — общие фикстуры для тестов.
package testutil

import (
	"time"

	"balabol/internal/config"
	"balabol/internal/features/triggers"
	"balabol/internal/features/users"
	"balabol/internal/features/words"
)

// NewTestConfig создаёт конфигурацию для тестов.
// Rate limit задран, чтобы не мешать сценариям из многих сообщений.
func NewTestConfig(superAdminID string) *config.Config {
	return &config.Config{
		TelegramBotToken:        "test-token",
		SuperAdminID:            superAdminID,
		AppEnv:                  "test",
		AppLogLevel:             "error",
		BotMaxInflight:          4,
		BotUpdateTimeoutSeconds: 1,
		ChatterProbability:      0,
		WordsUnique:             true,
		RateLimitRequests:       1000,
		RateLimitWindow:         time.Minute,
		DBMaxConns:              1,
	}
}

// NewTestUser создаёт пользователя для тестов.
func NewTestUser(userTgID int64, fullName string, role users.Role) *users.User {
	return &users.User{
		ID:        userTgID,
		UserTgID:  userTgID,
		FullName:  fullName,
		Username:  "tester",
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// NewTestWord создаёт слово для тестов.
func NewTestWord(id int64, text string, authorTgID int64) *words.Word {
	return &words.Word{
		ID:         id,
		Word:       text,
		AuthorTgID: authorTgID,
		CreatedAt:  time.Now(),
	}
}

// NewTestGroup создаёт обсиралку для тестов.
func NewTestGroup(id int64, phrase string, groupWords ...string) *triggers.TriggerGroup {
	return &triggers.TriggerGroup{
		ID:        id,
		Phrase:    phrase,
		Words:     groupWords,
		CreatedAt: time.Now(),
	}
}

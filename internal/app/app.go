// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики
// и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"
	"math/rand"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"balabol/internal/bot"
	"balabol/internal/capture"
	"balabol/internal/config"
	"balabol/internal/db/postgres"
	"balabol/internal/features/chatter"
	"balabol/internal/features/triggers"
	"balabol/internal/features/users"
	"balabol/internal/features/words"
	"balabol/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	userRepo := users.NewRepository(pool)
	wordRepo := words.NewRepository(pool)
	triggerRepo := triggers.NewRepository(pool)

	// === 4. Сервисы ===
	userService := users.NewService(userRepo, cfg)
	wordService := words.NewService(wordRepo, cfg.WordsUnique)
	triggerService := triggers.NewService(triggerRepo, rand.Intn)
	chatterService := chatter.NewService(cfg.ChatterProbability, rand.Float64)

	// === 5. Хранилище захватов (живёт, пока жив процесс) ===
	captures := capture.NewStore()

	// === 6. Обработчики ===
	userHandler := users.NewHandler(userService, captures, botAPI)
	wordHandler := words.NewHandler(wordService, userService, captures, botAPI)
	triggerHandler := triggers.NewHandler(triggerService, userService, captures, botAPI)
	chatterHandler := chatter.NewHandler(chatterService, triggerService, wordService, botAPI)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, botAPI.Self.ID, cfg, captures,
		userHandler, wordHandler, triggerHandler, chatterHandler,
	)

	// === 8. Планировщик задач ===
	scheduler := jobs.NewScheduler(wordService, cfg, b.SendMessageTo)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции по порядку.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Users},
		{2, migration002Words},
		{3, migration003TriggerGroups},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    user_tg_id BIGINT UNIQUE NOT NULL,
    full_name VARCHAR(255) NOT NULL,
    username VARCHAR(255) NOT NULL,
    role VARCHAR(32) NOT NULL DEFAULT 'user',
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_user_tg_id ON users(user_tg_id);
`

// Уникальность текста слова НЕ закреплена в схеме: её включает и выключает
// флаг WORDS_UNIQUE на уровне сервиса.
var migration002Words = `
CREATE TABLE IF NOT EXISTS words (
    id BIGSERIAL PRIMARY KEY,
    word TEXT NOT NULL,
    author_tg_id BIGINT NOT NULL REFERENCES users(user_tg_id),
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);
`

var migration003TriggerGroups = `
CREATE TABLE IF NOT EXISTS trigger_groups (
    id BIGSERIAL PRIMARY KEY,
    phrase TEXT NOT NULL,
    words TEXT[] NOT NULL DEFAULT '{}',
    author_tg_id BIGINT REFERENCES users(user_tg_id),
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_trigger_groups_phrase ON trigger_groups(phrase);
`

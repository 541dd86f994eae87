package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Migrator обёртка над goose с миграциями, встроенными в бинарник
type Migrator struct {
	db     *sql.DB
	logger Logger
}

// NewMigrator создаёт мигратор
func NewMigrator(db *sql.DB, logger Logger) (*Migrator, error) {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{db: db, logger: logger}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("Applying database migrations...")

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Info("Migrations applied, schema version=%d", version)
	return nil
}

// Status печатает состояние каждой миграции через логгер
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migrations status: %w", err)
	}
	return nil
}

// Version возвращает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// gooseLogger перенаправляет вывод goose в логгер сервиса
type gooseLogger struct {
	logger Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(format, v...)
}

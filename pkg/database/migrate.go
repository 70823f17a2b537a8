package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 训练表 (000001) 与课程表 (000002)
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDirtySchema 上一次迁移中途失败，需人工修复后 force 版本
var ErrDirtySchema = errors.New("数据库迁移处于 dirty 状态")

// migrateLogger 将 golang-migrate 的过程日志转发到 zap
type migrateLogger struct {
	l *zap.SugaredLogger
}

func (m migrateLogger) Printf(format string, v ...interface{}) {
	m.l.Infof(strings.TrimRight(format, "\n"), v...)
}

func (m migrateLogger) Verbose() bool { return false }

// RunMigrations 将训练与课程表结构升级到最新版本
// 已是最新版本时视为成功；schema 为 dirty 时拒绝启动
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "progress_schema_migrations"})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}
	m.Log = migrateLogger{l: logger.Named("migrate").Sugar()}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("读取迁移版本失败: %w", err)
	}
	if dirty {
		return fmt.Errorf("%w: version=%d", ErrDirtySchema, from)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("执行迁移失败 (from=%d): %w", from, err)
		}
		logger.Info("数据库结构已是最新", zap.Uint("version", from))
		return nil
	}

	to, _, _ := m.Version()
	logger.Info("数据库迁移完成", zap.Uint("from", from), zap.Uint("to", to))
	return nil
}

package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and verifies it with a ping.
func Connect(cfg Config) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	dialector, err := dialectorFor(cfg, timeout)
	if err != nil {
		return nil, err
	}

	// GORM logging is silenced; callers log through zap.
	// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey.
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if isMemorySQLite(cfg.Name) {
			// An in-memory database lives and dies with its single connection.
			sqlDB.SetMaxOpenConns(1)
		} else {
			// WAL lets readers proceed while an import holds the write lock.
			sqlDB.SetMaxIdleConns(4)
			sqlDB.SetMaxOpenConns(8)
		}
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func dialectorFor(cfg Config, timeout int) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverMySQL:
		// Special characters in the password must be URL encoded in the DSN.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.Name, timeout)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func isMemorySQLite(name string) bool {
	return name == "" || strings.Contains(name, ":memory:") || strings.Contains(name, "mode=memory")
}

// sqliteDSN adds a busy timeout and WAL journaling to file databases so
// concurrent connections wait for the write lock instead of failing.
func sqliteDSN(name string, timeout int) string {
	if isMemorySQLite(name) {
		return name
	}
	sep := "?"
	if strings.Contains(name, "?") {
		sep = "&"
	}
	params := make([]string, 0, 2)
	if !strings.Contains(name, "_busy_timeout") {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", timeout*1000))
	}
	if !strings.Contains(name, "_journal_mode") {
		params = append(params, "_journal_mode=WAL")
	}
	if len(params) == 0 {
		return name
	}
	return name + sep + strings.Join(params, "&")
}

package db

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options controls how the store is opened.
type Options struct {
	// Debug echoes every SQL statement to stderr.
	Debug bool
}

// readOnlyDSN builds a SQLite URI that opens an existing file without write access.
// The path is made absolute and percent-encoded so that '#', '?' and '%' in
// directory names stay part of the path.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path %s: %w", path, err)
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed // windows drive letters
	}
	u := url.URL{Scheme: "file", Path: slashed, RawQuery: "mode=ro"}
	return u.String(), nil
}

// OpenReadOnly opens the SQLite store at path with a single read-only connection.
// The file must already exist; SQLite will not create it in mode=ro.
func OpenReadOnly(path string, opts Options) (*gorm.DB, error) {
	level := gormlogger.Silent
	if opts.Debug {
		level = gormlogger.Info
	}
	// stdout carries command output, keep SQL traces on stderr
	sqlLogger := gormlogger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 sqlLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}
	return gdb, nil
}

// Close releases the connection behind gdb. A nil handle is a no-op.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

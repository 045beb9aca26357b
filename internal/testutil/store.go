// Package testutil builds throwaway MidiMind stores for tests.
package testutil

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// midiFilesSchema mirrors the table created by the upload service.
const midiFilesSchema = `CREATE TABLE midi_files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	data TEXT NOT NULL,
	size INTEGER,
	tracks INTEGER,
	duration REAL,
	tempo REAL,
	ppq INTEGER,
	uploaded_at TEXT,
	folder TEXT DEFAULT '/'
)`

// Record is a row to seed. Data is raw bytes; it is base64-encoded on insert.
type Record struct {
	ID         int64
	Filename   string
	Data       []byte
	Size       int64 // defaults to len(Data) when zero
	Tracks     int
	UploadedAt string
}

// RawRecord seeds an already-encoded payload, used for corrupt-data cases.
// A zero Size, tracks and uploaded_at are stored as NULL.
type RawRecord struct {
	ID       int64
	Filename string
	Data     string
	Size     int64
}

// NewStore creates midimind.db in a temp dir, seeds records and returns its path.
func NewStore(t *testing.T, records ...Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "midimind.db")
	gdb := open(t, path)

	for _, r := range records {
		size := r.Size
		if size == 0 {
			size = int64(len(r.Data))
		}
		uploaded := r.UploadedAt
		if uploaded == "" {
			uploaded = "2024-01-01T00:00:00.000Z"
		}
		err := gdb.Exec(`INSERT INTO midi_files (id, filename, data, size, tracks, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
			nullableID(r.ID), r.Filename, base64.StdEncoding.EncodeToString(r.Data), size, r.Tracks, uploaded).Error
		if err != nil {
			t.Fatalf("seed %q: %v", r.Filename, err)
		}
	}
	closeDB(t, gdb)
	return path
}

// InsertRaw adds rows with caller-provided base64 text to an existing store.
func InsertRaw(t *testing.T, path string, records ...RawRecord) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for _, r := range records {
		err := gdb.Exec(`INSERT INTO midi_files (id, filename, data, size) VALUES (?, ?, ?, ?)`,
			nullableID(r.ID), r.Filename, r.Data, nullableID(r.Size)).Error
		if err != nil {
			t.Fatalf("insert %q: %v", r.Filename, err)
		}
	}
	closeDB(t, gdb)
}

func open(t *testing.T, path string) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := gdb.Exec(midiFilesSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return gdb
}

func closeDB(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}

// nullableID maps zero to NULL so the store assigns ids and leaves metadata empty.
func nullableID(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

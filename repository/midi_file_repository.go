package repository

import (
	"context"
	"errors"
	"fmt"

	"midiextract/model"

	"gorm.io/gorm"
)

// NULL metadata columns are read as zero values.
const (
	listColumns    = "id, filename, COALESCE(size, 0) AS size, COALESCE(tracks, 0) AS tracks, COALESCE(uploaded_at, '') AS uploaded_at"
	recordColumns  = listColumns + ", data"
	summaryColumns = "id, filename"
)

// MidiFileRepository defines the read operations on stored MIDI files.
// Single-record lookups return (nil, nil) when nothing matches.
type MidiFileRepository interface {
	GetByID(ctx context.Context, id int64) (*model.MidiFile, error)
	GetByFilename(ctx context.Context, filename string) (*model.MidiFile, error)
	ListAll(ctx context.Context) ([]*model.MidiFile, error)
	ListSummaries(ctx context.Context) ([]model.MidiFileSummary, error)
}

// gormMidiFileRepository implements MidiFileRepository on top of gorm.
type gormMidiFileRepository struct {
	DB *gorm.DB
}

// NewMidiFileRepository creates a repository bound to gdb.
func NewMidiFileRepository(gdb *gorm.DB) MidiFileRepository {
	return &gormMidiFileRepository{DB: gdb}
}

// GetByID retrieves a record by its identifier.
func (r *gormMidiFileRepository) GetByID(ctx context.Context, id int64) (*model.MidiFile, error) {
	file, err := r.first(ctx, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get midi file by ID %d: %w", id, err)
	}
	return file, nil
}

// GetByFilename retrieves a record by exact filename. Filenames are not unique;
// the lowest id wins.
func (r *gormMidiFileRepository) GetByFilename(ctx context.Context, filename string) (*model.MidiFile, error) {
	file, err := r.first(ctx, "filename = ?", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to get midi file by filename %q: %w", filename, err)
	}
	return file, nil
}

func (r *gormMidiFileRepository) first(ctx context.Context, query string, arg interface{}) (*model.MidiFile, error) {
	var file model.MidiFile
	err := r.DB.WithContext(ctx).
		Select(recordColumns).
		Where(query, arg).
		Order("id ASC").
		Take(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

// ListAll retrieves every record ordered by ascending id. The payload column is
// not loaded.
func (r *gormMidiFileRepository) ListAll(ctx context.Context) ([]*model.MidiFile, error) {
	var files []*model.MidiFile
	err := r.DB.WithContext(ctx).
		Select(listColumns).
		Order("id ASC").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list midi files: %w", err)
	}
	return files, nil
}

// ListSummaries retrieves the (id, filename) pair of every record ordered by id.
func (r *gormMidiFileRepository) ListSummaries(ctx context.Context) ([]model.MidiFileSummary, error) {
	var summaries []model.MidiFileSummary
	err := r.DB.WithContext(ctx).
		Model(&model.MidiFile{}).
		Select(summaryColumns).
		Order("id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list midi file summaries: %w", err)
	}
	return summaries, nil
}

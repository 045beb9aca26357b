// Package extractor lists stored MIDI files and writes them back to disk.
package extractor

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"midiextract/core/command"
	"midiextract/logger"
	"midiextract/model"
	"midiextract/repository"
)

// FileStore persists decoded payloads.
type FileStore interface {
	Save(name string, data []byte) (string, error)
}

// Service runs extractor commands against a store and prints human-readable output.
type Service struct {
	repo           repository.MidiFileRepository
	files          FileStore
	out            io.Writer
	compareCommand string
}

// NewService creates a Service. compareCommand is the follow-up test command
// suggested after a successful extraction.
func NewService(repo repository.MidiFileRepository, files FileStore, out io.Writer, compareCommand string) *Service {
	return &Service{
		repo:           repo,
		files:          files,
		out:            out,
		compareCommand: compareCommand,
	}
}

// Run dispatches cmd to List or Extract.
func (s *Service) Run(ctx context.Context, cmd command.Command) error {
	logger.Debug("dispatching command", logger.String("kind", cmd.Kind.String()), logger.String("selector", cmd.String()))
	if cmd.Kind == command.KindList {
		return s.List(ctx)
	}
	return s.Extract(ctx, cmd)
}

// List prints every record in ascending id order.
func (s *Service) List(ctx context.Context) error {
	files, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprint(s.out, "\n  No files found in database.\n\n")
		return nil
	}

	fmt.Fprint(s.out, "\n📂 MIDI Files in database:\n\n")
	for _, f := range files {
		fmt.Fprintf(s.out, "  [%d] %s\n", f.ID, f.Filename)
		fmt.Fprintf(s.out, "      Size: %d bytes, Tracks: %d, Uploaded: %s\n", f.Size, f.Tracks, f.UploadedAt)
	}
	fmt.Fprintln(s.out)
	return nil
}

// Extract looks up a single record, decodes its payload and writes it to the
// file store. A missing record is reported with a listing of available files
// and is not an error.
func (s *Service) Extract(ctx context.Context, cmd command.Command) error {
	file, err := s.lookup(ctx, cmd)
	if err != nil {
		return err
	}
	if file == nil {
		return s.reportNotFound(ctx, cmd)
	}

	payload, err := base64.StdEncoding.DecodeString(file.Data)
	if err != nil {
		return fmt.Errorf("failed to decode data of midi file %d: %w", file.ID, err)
	}
	if int64(len(payload)) != file.Size {
		logger.Warn("decoded size differs from stored size",
			logger.Int64("id", file.ID),
			logger.Int64("stored_size", file.Size),
			logger.Int("decoded_size", len(payload)))
	}

	path, err := s.files.Save(file.Filename, payload)
	if err != nil {
		return err
	}
	logger.Info("midi file extracted",
		logger.Int64("id", file.ID),
		logger.String("filename", file.Filename),
		logger.String("path", path),
		logger.Int("bytes", len(payload)))

	fmt.Fprint(s.out, "\n✅ File extracted successfully!\n")
	fmt.Fprintf(s.out, "   ID: %d\n", file.ID)
	fmt.Fprintf(s.out, "   Name: %s\n", file.Filename)
	fmt.Fprintf(s.out, "   Size: %d bytes\n", file.Size)
	fmt.Fprintf(s.out, "   Tracks: %d\n", file.Tracks)
	fmt.Fprintf(s.out, "   Output: %s\n", path)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Now you can test it with:")
	fmt.Fprintf(s.out, "   %s %q\n", s.compareCommand, file.Filename)
	fmt.Fprintln(s.out)
	return nil
}

func (s *Service) lookup(ctx context.Context, cmd command.Command) (*model.MidiFile, error) {
	switch cmd.Kind {
	case command.KindExtractByID:
		return s.repo.GetByID(ctx, cmd.ID)
	case command.KindExtractByName:
		return s.repo.GetByFilename(ctx, cmd.Name)
	default:
		return nil, fmt.Errorf("unsupported command kind: %s", cmd.Kind)
	}
}

func (s *Service) reportNotFound(ctx context.Context, cmd command.Command) error {
	logger.Info("midi file not found", logger.String("selector", cmd.String()))

	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "❌ File not found: %s\n", cmd)
	fmt.Fprint(s.out, "\nAvailable files:\n")
	for _, f := range summaries {
		fmt.Fprintf(s.out, "  [%d] %s\n", f.ID, f.Filename)
	}
	return nil
}

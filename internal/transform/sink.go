package transform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/maruel/unicorn/internal/errors"
	"github.com/maruel/unicorn/internal/item"
)

// Sink receives finished items.
type Sink interface {
	// Emit hands off it, produced from f. outputPath is empty when no record
	// location could be resolved.
	Emit(ctx context.Context, f *File, it *item.Item, outputPath string) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, f *File, it *item.Item, outputPath string) error

// Emit calls fn.
func (fn SinkFunc) Emit(ctx context.Context, f *File, it *item.Item, outputPath string) error {
	return fn(ctx, f, it, outputPath)
}

// Stager records written files, e.g. for a version control commit.
type Stager interface {
	Stage(path string) error
}

// WriteSink persists items at their output path.
type WriteSink struct {
	Store Store
	// Stager is optional.
	Stager Stager
}

// Emit writes it at outputPath.
func (s *WriteSink) Emit(_ context.Context, f *File, it *item.Item, outputPath string) error {
	if outputPath == "" {
		return errors.NoOutputPath(filepath.Base(f.Path))
	}
	if err := s.Store.WriteItem(outputPath, it); err != nil {
		return fmt.Errorf("failed to write item for %s: %w", f.Path, err)
	}
	if s.Stager != nil {
		if err := s.Stager.Stage(outputPath); err != nil {
			return fmt.Errorf("failed to stage %s: %w", outputPath, err)
		}
	}
	return nil
}

// PassThroughSink replaces the file content with the serialized item, for
// further processing by later stages.
type PassThroughSink struct{}

// Emit rewrites f in place. Its name becomes the record file name.
func (PassThroughSink) Emit(_ context.Context, f *File, it *item.Item, outputPath string) error {
	data, err := item.Format(it)
	if err != nil {
		return err
	}
	name := changeExt(filepath.Base(f.Path), RecordExt)
	if outputPath != "" {
		name = filepath.Base(outputPath)
	}
	f.Path = filepath.Join(filepath.Dir(f.Path), name)
	f.Contents = data
	return nil
}

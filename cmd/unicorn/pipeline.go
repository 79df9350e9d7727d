package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maruel/unicorn/internal/config"
	"github.com/maruel/unicorn/internal/storage"
	"github.com/maruel/unicorn/internal/transform"
)

// pipeline runs files through a Transformer and delivers the records
// according to the configured mode.
type pipeline struct {
	cfg    *config.Config
	tr     *transform.Transformer
	store  *storage.FileStore
	git    *storage.GitService
	stdout io.Writer
	logger *slog.Logger
}

// fileOutcome is the result of processing one source file.
type fileOutcome struct {
	source string
	res    *transform.Result
	err    error
}

func newPipeline(cfg *config.Config, stdout io.Writer, logger *slog.Logger) (*pipeline, error) {
	p := &pipeline{cfg: cfg, store: storage.NewFileStore(), stdout: stdout, logger: logger}
	var sink transform.Sink
	switch cfg.Mode {
	case config.ModeTransform:
		sink = transform.PassThroughSink{}
	default:
		ws := &transform.WriteSink{Store: p.store}
		if cfg.Git.Commit {
			g, err := storage.NewGitService(p.recordRoot(), storage.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
			if err != nil {
				return nil, err
			}
			p.git = g
			ws.Stager = g
		}
		sink = ws
	}
	p.tr = transform.New(cfg.Options(), p.store, sink)
	p.tr.Logger = logger
	return p, nil
}

// recordRoot is the directory under which records are written.
func (p *pipeline) recordRoot() string {
	if p.cfg.OutputPath != "" {
		return p.cfg.OutputPath
	}
	return filepath.Dir(p.cfg.ParentItem)
}

// process transforms the file at path.
func (p *pipeline) process(ctx context.Context, path string) fileOutcome {
	out := fileOutcome{source: path}
	data, err := os.ReadFile(path) //nolint:gosec // Inputs are given on the command line.
	if err != nil {
		out.err = err
		return out
	}
	f := &transform.File{Path: path, Contents: data}
	if out.res, out.err = p.tr.Transform(ctx, f); out.err != nil {
		return out
	}
	if p.cfg.Mode == config.ModeTransform {
		out.err = p.emit(f)
	}
	return out
}

// emit delivers a pass-through record to the destination directory, or
// stdout when there is none.
func (p *pipeline) emit(f *transform.File) error {
	if p.cfg.Dest == "" {
		_, err := p.stdout.Write(f.Contents)
		return err
	}
	dst := filepath.Join(p.cfg.Dest, filepath.Base(f.Path))
	if err := p.store.WriteFile(dst, f.Contents); err != nil {
		return fmt.Errorf("failed to emit %s: %w", dst, err)
	}
	return nil
}

// run processes paths in order and commits written records when enabled.
func (p *pipeline) run(ctx context.Context, paths []string) ([]fileOutcome, error) {
	outcomes := make([]fileOutcome, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		o := p.process(ctx, path)
		if o.err != nil {
			p.logger.ErrorContext(ctx, "Failed to process file", "file", path, "err", o.err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, p.commit(ctx)
}

func (p *pipeline) commit(ctx context.Context) error {
	if p.git == nil {
		return nil
	}
	hash, err := p.git.Commit(ctx, p.cfg.Git.Message)
	if err != nil {
		return err
	}
	if hash != "" {
		p.logger.InfoContext(ctx, "Committed records", "commit", hash, "repo", p.git.Root())
	}
	return nil
}

// summaryWriter returns where the summary table goes: stderr when records
// are streamed to stdout.
func (p *pipeline) summaryWriter(stdout, stderr io.Writer) io.Writer {
	if p.cfg.Mode == config.ModeTransform && p.cfg.Dest == "" {
		return stderr
	}
	return stdout
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Author identifies who made a change for git commits.
type Author struct {
	Name  string
	Email string
}

// GitService stages written item records and commits them in one commit
// per run.
type GitService struct {
	repo   *gogit.Repository
	root   string
	author Author

	mu     sync.Mutex
	staged []string
}

// NewGitService opens the git repository containing dir, initializing one
// in dir when there is none.
func NewGitService(dir string, author Author) (*GitService, error) {
	if author.Name == "" {
		author.Name = "unicorn"
	}
	if author.Email == "" {
		author.Email = "unicorn@localhost"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: serialization trees are shared with other tools.
		return nil, fmt.Errorf("failed to create repo directory: %w", err)
	}
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Not a repo yet, initialize.
		repo, err = gogit.PlainInit(dir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize git repo: %w", err)
		}
	}
	w, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root, err := filepath.Abs(w.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &GitService{
		repo:   repo,
		root:   root,
		author: author,
	}, nil
}

// Root returns the root of the repository working tree.
func (gs *GitService) Root() string {
	return gs.root
}

// Stage adds the file at path to the index.
func (gs *GitService) Stage(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(gs.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s is outside of repository %s", path, gs.root)
	}
	rel = filepath.ToSlash(rel)

	gs.mu.Lock()
	defer gs.mu.Unlock()
	w, err := gs.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Add(rel); err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}
	gs.staged = append(gs.staged, rel)
	return nil
}

// Commit commits the staged records with message. It returns an empty hash
// when nothing changed.
//
// The commit holds the staged records only. It fails, leaving the index as is,
// when other changes are staged in the repository.
func (gs *GitService) Commit(_ context.Context, message string) (string, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if len(gs.staged) == 0 {
		return "", nil
	}
	w, err := gs.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree status: %w", err)
	}
	ours := make(map[string]bool, len(gs.staged))
	for _, p := range gs.staged {
		ours[p] = true
	}
	gs.staged = nil
	changed := false
	var foreign []string
	for p, s := range status {
		if s.Staging == gogit.Unmodified || s.Staging == gogit.Untracked {
			continue
		}
		if ours[p] {
			changed = true
		} else {
			foreign = append(foreign, p)
		}
	}
	if len(foreign) != 0 {
		// The commit would include them.
		slices.Sort(foreign)
		return "", fmt.Errorf("refusing to commit in %s: index holds unrelated staged changes: %s", gs.root, strings.Join(foreign, ", "))
	}
	if !changed {
		return "", nil
	}
	sig := &object.Signature{
		Name:  gs.author.Name,
		Email: gs.author.Email,
		When:  time.Now(),
	}
	hash, err := w.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

// Staged returns the repository relative paths staged since the last commit.
func (gs *GitService) Staged() []string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]string(nil), gs.staged...)
}

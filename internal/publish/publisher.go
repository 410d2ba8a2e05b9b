// Package publish synchronizes persisted notes to a git remote: stage,
// commit with a templated message, push.
package publish

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/noteforge/noteforge/internal/logger"
)

// Config contains configuration for the git publisher.
type Config struct {
	RepoDir         string        // repository path (the vault or a parent)
	RemoteName      string        // push remote, e.g. "origin"
	Branch          string        // push branch, e.g. "main"
	MessageTemplate string        // commit message template
	AuthorName      string        // commit author name
	AuthorEmail     string        // commit author email
	Username        string        // HTTP auth username (optional)
	Token           string        // HTTP auth token (optional)
	StageTimeout    time.Duration // bound on staging plus commit
	PushTimeout     time.Duration // bound on the push
	AutoPush        bool          // push after committing
}

// Result reports which pipeline steps ran.
type Result struct {
	Staged     int
	Committed  bool
	Pushed     bool
	CommitHash string
}

// GitPublisher commits and pushes note files from a local repository.
type GitPublisher struct {
	repo   *git.Repository
	cfg    Config
	logger *logger.Logger
	now    func() time.Time
}

// NewGitPublisher opens the repository at cfg.RepoDir, walking up to find
// the .git directory so the vault may live in a subdirectory.
func NewGitPublisher(cfg Config, log *logger.Logger) (*GitPublisher, error) {
	if cfg.RepoDir == "" {
		return nil, fmt.Errorf("repository directory is required")
	}
	if cfg.RemoteName == "" {
		cfg.RemoteName = "origin"
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.StageTimeout == 0 {
		cfg.StageTimeout = 30 * time.Second
	}
	if cfg.PushTimeout == 0 {
		cfg.PushTimeout = 60 * time.Second
	}

	repo, err := git.PlainOpenWithOptions(cfg.RepoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", cfg.RepoDir, err)
	}

	return &GitPublisher{repo: repo, cfg: cfg, logger: log, now: time.Now}, nil
}

// CommitAndPush stages the given files, commits them and pushes the branch.
// When nothing is staged the call succeeds without creating a commit. All
// failures come back as *Error with a classified kind.
func (g *GitPublisher) CommitAndPush(ctx context.Context, paths []string, vars map[string]string) (Result, error) {
	var res Result

	wt, err := g.repo.Worktree()
	if err != nil {
		return res, classify("stage", err)
	}
	root := wt.Filesystem.Root()

	err = runStep(ctx, g.cfg.StageTimeout, func() error {
		for _, p := range paths {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return fmt.Errorf("path %s is outside the repository: %w", p, err)
			}
			if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
				return fmt.Errorf("failed to stage %s: %w", rel, err)
			}
		}
		return nil
	})
	if err != nil {
		return res, classify("stage", err)
	}
	res.Staged = len(paths)

	status, err := wt.Status()
	if err != nil {
		return res, classify("stage", err)
	}
	if status.IsClean() {
		g.logger.Info("nothing to commit", logger.Field{Key: "paths", Value: len(paths)})
		return res, nil
	}

	msg := formatMessage(g.cfg.MessageTemplate, g.now(), vars)
	var hash plumbing.Hash
	err = runStep(ctx, g.cfg.StageTimeout, func() error {
		h, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{
				Name:  g.cfg.AuthorName,
				Email: g.cfg.AuthorEmail,
				When:  g.now(),
			},
		})
		if err != nil {
			return err
		}
		hash = h
		return nil
	})
	if err != nil {
		return res, classify("commit", err)
	}
	res.Committed = true
	res.CommitHash = hash.String()

	g.logger.Info("commit created",
		logger.Field{Key: "hash", Value: res.CommitHash},
		logger.Field{Key: "message", Value: msg})

	if !g.cfg.AutoPush {
		return res, nil
	}

	if err := g.push(ctx); err != nil {
		return res, err
	}
	res.Pushed = true

	g.logger.Info("pushed",
		logger.Field{Key: "remote", Value: g.cfg.RemoteName},
		logger.Field{Key: "branch", Value: g.cfg.Branch})

	return res, nil
}

func (g *GitPublisher) push(ctx context.Context) error {
	pushCtx, cancel := context.WithTimeout(ctx, g.cfg.PushTimeout)
	defer cancel()

	opts := &git.PushOptions{
		RemoteName: g.cfg.RemoteName,
		RefSpecs: []config.RefSpec{
			config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", g.cfg.Branch, g.cfg.Branch)),
		},
	}
	if g.cfg.Token != "" {
		username := g.cfg.Username
		if username == "" {
			username = "git"
		}
		opts.Auth = &http.BasicAuth{Username: username, Password: g.cfg.Token}
	}

	err := g.repo.PushContext(pushCtx, opts)
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return classify("push", err)
	}
	return nil
}

// runStep bounds a blocking go-git call that takes no context. The work
// keeps running in its goroutine after a timeout; the caller just stops
// waiting for it.
func runStep(ctx context.Context, timeout time.Duration, fn func() error) error {
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-stepCtx.Done():
		return stepCtx.Err()
	}
}

// Package gitmeta derives per-file last-modified times from git history.
// Content without an explicit last_updated field falls back to the commit
// time of the last change touching it, which keeps sitemap lastmod honest
// without requiring authors to maintain dates by hand.
package gitmeta

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/sitedata/internal/logfields"
)

// Resolver answers last-modified queries from one repository's history.
type Resolver struct {
	repo   *git.Repository
	prefix string
}

// Open locates the repository containing dir. The returned resolver answers
// queries with paths relative to dir. A nil resolver (with nil error) means
// dir is not inside a git work tree; callers fall back to file mtimes.
func Open(dir string) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		slog.Debug("content directory is not in a git work tree", logfields.Path(dir))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	prefix, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return nil, err
	}
	if prefix == "." {
		prefix = ""
	}
	return &Resolver{repo: repo, prefix: filepath.ToSlash(prefix)}, nil
}

// LastModified returns the commit time of the most recent commit touching
// the file, or the zero time when the file has no history (untracked or
// newly added).
func (r *Resolver) LastModified(ctx context.Context, relPath string) (time.Time, error) {
	if r == nil || r.repo == nil {
		return time.Time{}, nil
	}

	target := relPath
	if r.prefix != "" {
		target = r.prefix + "/" + relPath
	}
	target = strings.TrimPrefix(filepath.ToSlash(target), "./")

	iter, err := r.repo.Log(&git.LogOptions{FileName: &target})
	if err != nil {
		return time.Time{}, err
	}
	defer iter.Close()

	var commit *object.Commit
	err = func() error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := iter.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			commit = c
			// Log is newest-first; the first hit is the answer.
			return nil
		}
	}()
	if err != nil {
		return time.Time{}, err
	}
	if commit == nil {
		return time.Time{}, nil
	}
	return commit.Committer.When.UTC(), nil
}

package material

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
)

// RepoDir returns the local checkout directory for a repository URL
// under root. The name keeps the repository's base name for readability.
func RepoDir(root, url string) string {
	base := strings.TrimSuffix(path.Base(strings.TrimRight(url, "/")), ".git")
	if base == "" || base == "." || base == "/" {
		base = "repo"
	}
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(root, fmt.Sprintf("%s-%x", base, sum[:4]))
}

// SyncRepo clones url into localPath, or pulls when a checkout already
// exists there.
func SyncRepo(ctx context.Context, url, localPath string) error {
	_, err := os.Stat(localPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Info("cloning deck repository", "url", url, "path", localPath)
		if _, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{URL: url}); err != nil {
			return fmt.Errorf("clone %s: %w", url, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("stat %s: %w", localPath, err)
	}

	slog.Info("pulling deck repository", "path", localPath)
	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("open repo %s: %w", localPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree %s: %w", localPath, err)
	}
	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pull %s: %w", localPath, err)
	}
	return nil
}

// LoadRepo syncs a git repository of markdown decks under root and parses it.
func LoadRepo(ctx context.Context, url, root string, newID func() string, now time.Time) ([]Deck, error) {
	dir := RepoDir(root, url)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create repos dir: %w", err)
	}
	if err := SyncRepo(ctx, url, dir); err != nil {
		return nil, err
	}
	return LoadDir(dir, newID, now)
}

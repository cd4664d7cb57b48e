package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultCloneTimeout = 30 * time.Second

// Cloner produces a working copy of repo in dir.
type Cloner interface {
	Clone(ctx context.Context, repo Repo, dir string) error
}

// GitCloner makes shallow clones with the git command line.
type GitCloner struct {
	Timeout time.Duration
}

func NewGitCloner(timeout time.Duration) *GitCloner {
	return &GitCloner{Timeout: timeout}
}

func (g *GitCloner) Clone(ctx context.Context, repo Repo, dir string) error {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultCloneTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info().Str("repo", repo.String()).Str("dir", dir).Msg("cloning tutorials repository")
	start := time.Now()

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", repo.URL.String(), "-b", repo.Branch, dir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s failed: %w: %s", repo, err, strings.TrimSpace(stderr.String()))
	}

	log.Debug().Str("repo", repo.String()).Dur("took", time.Since(start)).Msg("clone complete")
	return nil
}

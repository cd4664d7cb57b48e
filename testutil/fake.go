package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lsst-sqre/rsp-jupyter-extensions/source"
	"github.com/stretchr/testify/require"
)

var _ source.Cloner = (*FakeCloner)(nil)

// FakeCloner "clones" by writing Files into the target directory.
type FakeCloner struct {
	Files map[string]string

	mu    sync.Mutex
	repos []source.Repo
}

func NewFakeCloner(files map[string]string) *FakeCloner {
	return &FakeCloner{Files: files}
}

func (f *FakeCloner) Clone(ctx context.Context, repo source.Repo, dir string) error {
	f.mu.Lock()
	f.repos = append(f.repos, repo)
	f.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		return err
	}
	return writeTree(dir, f.Files)
}

// Repos returns every repository cloned so far.
func (f *FakeCloner) Repos() []source.Repo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]source.Repo(nil), f.repos...)
}

// WriteTree creates files, keyed by slash separated path, below root.
func WriteTree(t testing.TB, root string, files map[string]string) {
	require.NoError(t, writeTree(root, files))
}

func writeTree(root string, files map[string]string) error {
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

package hierarchy

import (
	"errors"
	"net/url"
	"path"
	"path/filepath"
)

// Rewriter turns the path of a content file, relative to the content root and
// slash separated, into the src or dest string of its entry.
//
// The set of rewriters is closed: Identity, WorkspaceSubpath and DownloadURL.
type Rewriter interface {
	Rewrite(rel string) (string, error)

	isRewriter()
}

// Identity yields the file's own absolute location under Root.
type Identity struct {
	Root string
}

func (r Identity) Rewrite(rel string) (string, error) {
	return filepath.Join(r.Root, filepath.FromSlash(rel)), nil
}

func (Identity) isRewriter() {}

// WorkspaceSubpath places the file under Workspace, a path relative to the
// home directory such as notebooks/tutorials/latest.
type WorkspaceSubpath struct {
	Workspace string
}

func (r WorkspaceSubpath) Rewrite(rel string) (string, error) {
	if path.IsAbs(r.Workspace) {
		return "", errors.New("workspace must be relative to the home directory")
	}
	return path.Join(r.Workspace, rel), nil
}

func (WorkspaceSubpath) isRewriter() {}

// DownloadURL maps a file in a clone of Repo to its raw download URL on
// Branch.
type DownloadURL struct {
	Repo   *url.URL
	Branch string
}

func (r DownloadURL) Rewrite(rel string) (string, error) {
	if r.Repo == nil {
		return "", errors.New("no repository URL")
	}
	return r.Repo.JoinPath("raw", "refs", "heads", r.Branch, rel).String(), nil
}

func (DownloadURL) isRewriter() {}

package hierarchy_test

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/lsst-sqre/rsp-jupyter-extensions/hierarchy"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestBuildTree(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"b.ipynb":             "{}",
		"a.ipynb":             "{}",
		"README.md":           "# readme",
		"DP02/01_Intro.ipynb": "{}",
		"DP02/notes.txt":      "",
		"empty/notes.txt":     "",
		".git/HEAD.ipynb":     "ref",
	})
	r.NoError(os.MkdirAll(filepath.Join(root, "nothing"), 0o755))

	h, err := hierarchy.Build(osfs.New(root), hierarchy.BuildOptions{
		Parent: "/w_2025_10",
		Action: hierarchy.ActionCopy,
		Dest:   hierarchy.WorkspaceSubpath{Workspace: "notebooks/tutorials/w_2025_10"},
		Suffix: ".ipynb",
	})
	r.NoError(err)

	r.Len(h.Entries, 2)
	r.Contains(h.Entries, "a")
	r.Contains(h.Entries, "b")
	r.Equal(hierarchy.Entry{
		Disposition: hierarchy.DispositionPrompt,
		Parent:      "/w_2025_10",
		Source:      hierarchy.LocalSource{Path: filepath.Join(root, "a.ipynb")},
		Dest:        "notebooks/tutorials/w_2025_10/a.ipynb",
	}, h.Entries["a"])

	r.Len(h.Subhierarchies, 1)
	dp02 := h.Subhierarchies["DP02"]
	r.NotNil(dp02)
	r.Nil(dp02.Subhierarchies)
	r.Len(dp02.Entries, 1)
	intro := dp02.Entries["01_Intro"]
	r.Equal("/w_2025_10/DP02", intro.Parent)
	r.Equal("notebooks/tutorials/w_2025_10/DP02/01_Intro.ipynb", intro.Dest)
}

func TestBuildSuffixFilter(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.txt": "A", "a.py": "print()"})

	h, err := hierarchy.Build(osfs.New(root), hierarchy.BuildOptions{
		Action: hierarchy.ActionCopy,
		Suffix: ".txt",
	})
	r.NoError(err)
	r.Len(h.Entries, 1)
	r.Contains(h.Entries, "a")
	r.NotContains(h.Entries, "a.txt")
	r.Empty(h.Entries["a"].Parent)
}

func TestBuildWithoutSuffixKeepsNames(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.txt": "A", "a.py": "print()"})

	h, err := hierarchy.Build(osfs.New(root), hierarchy.BuildOptions{Action: hierarchy.ActionCopy})
	r.NoError(err)
	r.Len(h.Entries, 2)
	r.Contains(h.Entries, "a.txt")
	r.Contains(h.Entries, "a.py")
}

func TestBuildSkipsSymlinks(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()
	outside := t.TempDir()
	writeFiles(t, root, map[string]string{"real.ipynb": "{}", "dir/inner.ipynb": "{}"})
	writeFiles(t, outside, map[string]string{"secret.ipynb": "{}"})

	r.NoError(os.Symlink(filepath.Join(root, "real.ipynb"), filepath.Join(root, "link.ipynb")))
	r.NoError(os.Symlink(outside, filepath.Join(root, "linkdir")))
	r.NoError(os.Symlink(root, filepath.Join(root, "dir", "loop")))

	h, err := hierarchy.Build(osfs.New(root), hierarchy.BuildOptions{
		Action: hierarchy.ActionCopy,
		Suffix: ".ipynb",
	})
	r.NoError(err)
	r.Len(h.Entries, 1)
	r.Contains(h.Entries, "real")
	r.NotContains(h.Entries, "link")
	r.NotContains(h.Subhierarchies, "linkdir")
	r.Len(h.Subhierarchies["dir"].Entries, 1)
	r.Nil(h.Subhierarchies["dir"].Subhierarchies)
}

func TestBuildDeterministic(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"z.ipynb":       "{}",
		"m/y.ipynb":     "{}",
		"m/n/x.ipynb":   "{}",
		"a/b/c/d.ipynb": "{}",
	})
	opts := hierarchy.BuildOptions{Parent: "/t", Action: hierarchy.ActionCopy, Suffix: ".ipynb"}

	first, err := hierarchy.Build(osfs.New(root), opts)
	r.NoError(err)
	second, err := hierarchy.Build(osfs.New(root), opts)
	r.NoError(err)
	r.Equal(first, second)

	a, err := json.Marshal(first)
	r.NoError(err)
	b, err := json.Marshal(second)
	r.NoError(err)
	r.Equal(string(a), string(b))
}

func TestBuildEmptyTree(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()
	r.NoError(os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))

	h, err := hierarchy.Build(osfs.New(root), hierarchy.BuildOptions{Action: hierarchy.ActionCopy})
	r.NoError(err)
	r.True(h.IsEmpty())
	r.Nil(h.Entries)
	r.Nil(h.Subhierarchies)
}

func TestBuildFetchURLs(t *testing.T) {
	r := require.New(t)
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"DP02/01 Intro.ipynb": "{}"})

	repo, err := url.Parse("https://github.com/lsst/tutorial-notebooks")
	r.NoError(err)

	h, err := hierarchy.Build(osfs.New(root), hierarchy.BuildOptions{
		Parent: "/latest",
		Action: hierarchy.ActionFetch,
		Src:    hierarchy.DownloadURL{Repo: repo, Branch: "main"},
		Dest:   hierarchy.WorkspaceSubpath{Workspace: "notebooks/tutorials/latest"},
		Suffix: ".ipynb",
	})
	r.NoError(err)

	e := h.Subhierarchies["DP02"].Entries["01 Intro"]
	r.Equal(hierarchy.ActionFetch, e.Action())
	src, ok := e.Source.(hierarchy.RemoteSource)
	r.True(ok)
	r.Equal("github.com", src.URL.Host)
	r.Equal("/lsst/tutorial-notebooks/raw/refs/heads/main/DP02/01 Intro.ipynb", src.URL.Path)
	r.Equal("/latest/DP02", e.Parent)
	r.Equal("notebooks/tutorials/latest/DP02/01 Intro.ipynb", e.Dest)

	back, err := hierarchy.HierarchyFromPrimitive(h.ToPrimitive())
	r.NoError(err)
	r.Equal(h, back)
}

func TestBuildMissingRoot(t *testing.T) {
	_, err := hierarchy.Build(osfs.New(filepath.Join(t.TempDir(), "missing")), hierarchy.BuildOptions{Action: hierarchy.ActionCopy})
	require.Error(t, err)
}

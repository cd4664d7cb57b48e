package materialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContain(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "notebooks"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(home, "notebooks"), filepath.Join(home, "nb")))
	require.NoError(t, os.Symlink(filepath.Join(t.TempDir(), "gone.ipynb"), filepath.Join(home, "dangling")))
	require.NoError(t, os.Symlink(filepath.Join(home, "gone"), filepath.Join(home, "dangling-inside")))

	tests := []struct {
		dest string
		rel  string
		ok   bool
	}{
		{dest: "a.ipynb", rel: "a.ipynb", ok: true},
		{dest: "notebooks/tutorials/x/a.ipynb", rel: "notebooks/tutorials/x/a.ipynb", ok: true},
		{dest: "notebooks/../a.ipynb", rel: "a.ipynb", ok: true},
		{dest: "nb/a.ipynb", rel: "notebooks/a.ipynb", ok: true},
		{dest: filepath.Join(home, "b.ipynb"), rel: "b.ipynb", ok: true},
		{dest: "..", ok: false},
		{dest: "../" + filepath.Base(home) + "x/a.ipynb", ok: false},
		{dest: "/etc/passwd", ok: false},
		{dest: "", ok: false},
		{dest: "dangling", ok: false},
		{dest: "dangling/a.ipynb", ok: false},
		{dest: "dangling-inside", ok: false},
		{dest: filepath.Join(home, "dangling-inside"), ok: false},
	}

	for _, tt := range tests {
		rel, err := Contain(home, tt.dest)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrContainment, tt.dest)
			continue
		}
		assert.NoError(t, err, tt.dest)
		assert.Equal(t, filepath.FromSlash(tt.rel), rel, tt.dest)
	}
}

func TestContainWithoutHome(t *testing.T) {
	_, err := Contain("", "a.ipynb")
	require.ErrorIs(t, err, ErrContainment)

	_, err = Contain(filepath.Join(t.TempDir(), "missing"), "a.ipynb")
	require.ErrorIs(t, err, ErrContainment)
}

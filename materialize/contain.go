package materialize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrContainment is returned for any destination that does not resolve to a
// path strictly below the home directory.
var ErrContainment = errors.New("destination is not contained by the home directory")

// Contain resolves dest against home and returns it relative to home.
//
// Relative destinations are taken relative to home. Both paths are brought to
// canonical absolute form first: cleaned, with symlinks in the longest
// existing prefix evaluated. Any failure to resolve is a containment error.
func Contain(home string, dest string) (string, error) {
	if home == "" {
		return "", fmt.Errorf("%w: no home directory", ErrContainment)
	}
	absHome, err := filepath.Abs(home)
	if err != nil {
		return "", errors.Join(ErrContainment, err)
	}
	canonHome, err := filepath.EvalSymlinks(absHome)
	if err != nil {
		return "", errors.Join(ErrContainment, err)
	}

	abs := dest
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(absHome, abs)
	}
	canon, err := canonical(filepath.Clean(abs))
	if err != nil {
		return "", errors.Join(ErrContainment, err)
	}

	rel, err := filepath.Rel(canonHome, canon)
	if err != nil {
		return "", errors.Join(ErrContainment, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: '%s' is not contained by '%s'", ErrContainment, abs, home)
	}
	return rel, nil
}

// canonical evaluates symlinks in the longest existing prefix of p and
// appends the rest unchanged. A dangling symlink anywhere along p is an
// error.
func canonical(p string) (string, error) {
	rest := ""
	cur := p
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(resolved, rest), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		// cur exists but does not resolve: a dangling symlink
		if _, lerr := os.Lstat(cur); lerr == nil {
			return "", fmt.Errorf("'%s' is a dangling symlink", cur)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", err
		}
		rest = filepath.Join(filepath.Base(cur), rest)
		cur = parent
	}
}

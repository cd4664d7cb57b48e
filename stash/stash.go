package stash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	jsoniter "github.com/json-iterator/go"
	"github.com/lsst-sqre/rsp-jupyter-extensions/hierarchy"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// MenuFile is the menu stash, relative to the cache directory.
	MenuFile = "tutorials.json"
	// MenuMaxAge is how long a menu stash is trusted.
	MenuMaxAge = 8 * time.Hour
)

// Stash persists a built hierarchy as JSON so that menu requests within the
// freshness window skip directory scans and clones.
//
// There is no locking: concurrent writers race and the last one wins, which
// is harmless because they write equivalent trees. Each write is a rename,
// so a reader never sees a partial stash.
type Stash struct {
	fs     billy.Filesystem
	name   string
	maxAge time.Duration
}

func New(fs billy.Filesystem, name string, maxAge time.Duration) *Stash {
	return &Stash{
		fs:     fs,
		name:   name,
		maxAge: maxAge,
	}
}

func (s *Stash) Name() string {
	return s.name
}

// Load returns the stashed hierarchy, or nil when there is no stash or it is
// older than the freshness window.
func (s *Stash) Load() (*hierarchy.Hierarchy, error) {
	fresh, err := Fresh(s.fs, s.name, s.maxAge, time.Now())
	if err != nil {
		return nil, err
	}
	if !fresh {
		stashMisses.WithLabelValues(s.name).Inc()
		return nil, nil
	}

	data, err := util.ReadFile(s.fs, s.name)
	if err != nil {
		return nil, err
	}

	var p map[string]any
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: stash %s: %v", hierarchy.ErrInvalid, s.name, err)
	}
	h, err := hierarchy.HierarchyFromPrimitive(p)
	if err != nil {
		return nil, fmt.Errorf("stash %s: %w", s.name, err)
	}

	stashHits.WithLabelValues(s.name).Inc()
	log.Debug().Str("stash", s.name).Msg("loaded hierarchy from stash")
	return h, nil
}

// Store writes h to the stash, creating the cache directory if needed.
func (s *Stash) Store(h *hierarchy.Hierarchy) error {
	data, err := json.Marshal(h.ToPrimitive())
	if err != nil {
		return err
	}

	err = s.fs.MkdirAll(filepath.Dir(s.name), 0o755)
	if err != nil {
		return err
	}

	err = s.replace(data)
	if err != nil {
		return err
	}

	stashWrites.WithLabelValues(s.name).Inc()
	log.Debug().Str("stash", s.name).Int("bytes", len(data)).Msg("wrote hierarchy stash")
	return nil
}

// replace writes data next to the stash and renames it into place, so
// readers see either the old or the new stash in full.
func (s *Stash) replace(data []byte) (err error) {
	tmp, err := util.TempFile(s.fs, filepath.Dir(s.name), "."+filepath.Base(s.name)+"-")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	return s.fs.Rename(tmp.Name(), s.name)
}

// Age reports how old the stash file is. ok is false when there is none.
func (s *Stash) Age(now time.Time) (age time.Duration, ok bool, err error) {
	fi, err := s.fs.Stat(s.name)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return now.Sub(fi.ModTime()), true, nil
}

// Fresh reports whether name is a regular file modified no more than maxAge
// before now.
func Fresh(fs billy.Filesystem, name string, maxAge time.Duration, now time.Time) (bool, error) {
	fi, err := fs.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !fi.Mode().IsRegular() {
		return false, nil
	}
	return now.Sub(fi.ModTime()) <= maxAge, nil
}

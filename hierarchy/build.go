package hierarchy

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// GitDir is never descended into.
const GitDir = ".git"

type BuildOptions struct {
	// Parent is the menu location of the root; empty means the menu root.
	Parent string
	Action Action
	// Src defaults to Identity over the filesystem root.
	Src Rewriter
	// Dest defaults to Identity over the filesystem root.
	Dest Rewriter
	// Suffix, when set, filters files and is stripped from display names.
	Suffix string
}

// Build walks fsys from its root and returns the menu tree of its files.
//
// Symlinks are skipped, as is any .git directory. Directories that contain
// nothing usable do not appear in the result. Entries always get the prompt
// disposition.
func Build(fsys billy.Filesystem, opts BuildOptions) (*Hierarchy, error) {
	if opts.Src == nil {
		opts.Src = Identity{Root: fsys.Root()}
	}
	if opts.Dest == nil {
		opts.Dest = Identity{Root: fsys.Root()}
	}
	return build(fsys, "", opts.Parent, opts)
}

func build(fsys billy.Filesystem, dir string, parent string, opts BuildOptions) (*Hierarchy, error) {
	infos, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	h := &Hierarchy{}
	for _, info := range infos {
		name := info.Name()
		p := fsys.Join(dir, name)

		fi, err := fsys.Lstat(p)
		if err != nil {
			return nil, err
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			continue
		}

		if fi.IsDir() {
			if name == GitDir {
				continue
			}
			sub, err := build(fsys, p, childParent(parent, name), opts)
			if err != nil {
				return nil, err
			}
			if !sub.IsEmpty() {
				h.addSubhierarchy(name, sub)
			}
			continue
		}

		if !fi.Mode().IsRegular() {
			continue
		}

		display := name
		if opts.Suffix != "" {
			if !strings.HasSuffix(name, opts.Suffix) {
				continue
			}
			display = strings.TrimSuffix(name, opts.Suffix)
		}

		rel := filepath.ToSlash(p)
		entry, err := newEntry(rel, parent, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		h.addEntry(display, entry)
	}

	return h, nil
}

func newEntry(rel string, parent string, opts BuildOptions) (Entry, error) {
	rawSrc, err := opts.Src.Rewrite(rel)
	if err != nil {
		return Entry{}, err
	}
	src, err := NewSource(opts.Action, rawSrc)
	if err != nil {
		return Entry{}, err
	}
	dest, err := opts.Dest.Rewrite(rel)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Disposition: DispositionPrompt,
		Parent:      parent,
		Source:      src,
		Dest:        dest,
	}, nil
}

func childParent(parent string, name string) string {
	return path.Join("/", parent, name)
}

package tutorials

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/lsst-sqre/rsp-jupyter-extensions/hierarchy"
	"github.com/lsst-sqre/rsp-jupyter-extensions/source"
	"github.com/lsst-sqre/rsp-jupyter-extensions/stash"
	"github.com/rs/zerolog/log"
)

const (
	// Workspace is where tutorials land, relative to the home directory.
	Workspace = "notebooks/tutorials"

	LatestName   = "latest"
	ResidentName = "resident"
)

// Menu assembles the tutorials menu for one request.
type Menu struct {
	env    *config.Environment
	cloner source.Cloner
	stash  *stash.Stash
}

func NewMenu(env *config.Environment, cloner source.Cloner) *Menu {
	return &Menu{
		env:    env,
		cloner: cloner,
		stash:  stash.New(osfs.New(env.CacheDir), stash.MenuFile, env.MenuMaxAge),
	}
}

// Hierarchy returns the stashed menu while it is fresh and rebuilds it
// otherwise.
func (m *Menu) Hierarchy(ctx context.Context) (*hierarchy.Hierarchy, error) {
	h, err := m.stash.Load()
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable menu stash")
	}
	if h != nil {
		return h, nil
	}
	return m.Rebuild(ctx)
}

// Rebuild scans the resident tutorials, clones the latest ones and stashes
// the combined tree. A failed stash write is logged, the tree is still
// returned.
func (m *Menu) Rebuild(ctx context.Context) (*hierarchy.Hierarchy, error) {
	start := time.Now()

	res, err := m.Resident()
	if err != nil {
		rebuilds.WithLabelValues("failed").Inc()
		return nil, err
	}
	latest, err := m.Latest(ctx)
	if err != nil {
		rebuilds.WithLabelValues("failed").Inc()
		return nil, err
	}

	h := &hierarchy.Hierarchy{
		Subhierarchies: map[string]*hierarchy.Hierarchy{
			LatestName:   latest,
			ResidentName: res,
		},
	}

	err = m.stash.Store(h)
	if err != nil {
		log.Error().Err(err).Msg("could not write menu stash")
	}

	rebuilds.WithLabelValues("ok").Inc()
	rebuildDuration.Observe(time.Since(start).Seconds())
	return h, nil
}

// Resident is the tree of tutorials baked into the image, copied into a
// workspace named for the image tag.
func (m *Menu) Resident() (*hierarchy.Hierarchy, error) {
	tag, err := m.env.Tag()
	if err != nil {
		return nil, err
	}

	return hierarchy.Build(osfs.New(m.env.TutorialsDir), hierarchy.BuildOptions{
		Parent: "/" + tag,
		Action: hierarchy.ActionCopy,
		Dest:   hierarchy.WorkspaceSubpath{Workspace: path.Join(Workspace, tag)},
		Suffix: m.env.Suffix,
	})
}

// Latest clones the tutorials repository into a scratch directory and
// builds a tree of download URLs from it. It is empty when no repository is
// configured.
func (m *Menu) Latest(ctx context.Context) (*hierarchy.Hierarchy, error) {
	repo, err := source.FindRepo(m.env.RepoSpecs, m.env.RepoMarker)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		log.Info().Msg("no tutorials repository configured")
		return &hierarchy.Hierarchy{}, nil
	}

	dir, err := os.MkdirTemp("", "rsp-tutorials-")
	if err != nil {
		return nil, err
	}
	defer func() {
		err := os.RemoveAll(dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("could not remove scratch clone")
		}
	}()

	err = m.cloner.Clone(ctx, *repo, dir)
	if err != nil {
		return nil, err
	}

	return hierarchy.Build(osfs.New(dir), hierarchy.BuildOptions{
		Parent: "/" + LatestName,
		Action: hierarchy.ActionFetch,
		Src:    hierarchy.DownloadURL{Repo: repo.URL, Branch: repo.Branch},
		Dest:   hierarchy.WorkspaceSubpath{Workspace: path.Join(Workspace, LatestName)},
		Suffix: m.env.Suffix,
	})
}

// StashAge reports the age of the menu stash under cacheDir.
func StashAge(cacheDir string, now time.Time) (time.Duration, bool, error) {
	return stash.New(osfs.New(cacheDir), stash.MenuFile, stash.MenuMaxAge).Age(now)
}

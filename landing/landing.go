package landing

import (
	"io"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/lsst-sqre/rsp-jupyter-extensions/stash"
	"github.com/rs/zerolog/log"
)

type Copier interface {
	Copy(src string, w io.Writer) (int64, error)
}

// Page keeps copies of the landing page files in the cache directory, where
// the lab can open them.
type Page struct {
	fs     billy.Filesystem
	srcDir string
	files  []string
	maxAge time.Duration
	copier Copier
}

func NewPage(env *config.Environment, copier Copier) *Page {
	return &Page{
		fs:     osfs.New(env.CacheDir),
		srcDir: env.LandingSourceDir,
		files:  env.LandingFiles,
		maxAge: env.LandingMaxAge,
		copier: copier,
	}
}

// Fresh reports whether every landing file is cached and recent enough.
func (p *Page) Fresh(now time.Time) (bool, error) {
	for _, name := range p.files {
		fresh, err := stash.Fresh(p.fs, name, p.maxAge, now)
		if err != nil || !fresh {
			return false, err
		}
	}
	return true, nil
}

// Ensure refreshes all landing files unless they are already fresh.
func (p *Page) Ensure() error {
	fresh, err := p.Fresh(time.Now())
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}

	log.Info().Str("src", p.srcDir).Msg("refreshing landing page")
	for _, name := range p.files {
		err := p.copyFile(name)
		if err != nil {
			return err
		}
	}
	refreshes.Inc()
	return nil
}

func (p *Page) copyFile(name string) (err error) {
	err = p.fs.MkdirAll(".", 0o755)
	if err != nil {
		return err
	}

	f, err := p.fs.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	_, err = p.copier.Copy(filepath.Join(p.srcDir, name), f)
	return err
}

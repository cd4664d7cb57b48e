package materialize

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/lsst-sqre/rsp-jupyter-extensions/hierarchy"
	"github.com/rs/zerolog/log"
)

const (
	StatusCopied    = http.StatusOK
	StatusConflict  = http.StatusConflict
	StatusAbandoned = http.StatusNoContent
)

// Transferer moves the bytes of one entry. network.Transfer is the
// production implementation.
type Transferer interface {
	Fetch(ctx context.Context, src *url.URL, w io.Writer) (int64, error)
	Copy(src string, w io.Writer) (int64, error)
}

// Guidance tells the UI what happened. Dest, relative to the home directory,
// is only set when the file was written.
type Guidance struct {
	Status int
	Dest   string
}

// Resolver materializes entries into one home directory. It is meant to live
// for a single request.
type Resolver struct {
	home     string
	fs       billy.Filesystem
	transfer Transferer
}

func NewResolver(home string, transfer Transferer) *Resolver {
	return &Resolver{
		home:     home,
		fs:       osfs.New(home, osfs.WithBoundOS()),
		transfer: transfer,
	}
}

// Resolve decodes a wire entry and materializes it.
func (r *Resolver) Resolve(ctx context.Context, p map[string]any) (Guidance, error) {
	entry, err := hierarchy.EntryFromPrimitive(p)
	if err != nil {
		outcomes.WithLabelValues("invalid").Inc()
		return Guidance{}, err
	}
	return r.Materialize(ctx, entry)
}

// Materialize writes entry into the home directory unless its destination
// exists and its disposition says otherwise.
func (r *Resolver) Materialize(ctx context.Context, entry hierarchy.Entry) (Guidance, error) {
	rel, err := Contain(r.home, entry.Dest)
	if err != nil {
		outcomes.WithLabelValues("refused").Inc()
		log.Error().Err(err).Str("dest", entry.Dest).Msg("refusing to write outside of home")
		return Guidance{}, err
	}

	_, err = r.fs.Lstat(rel)
	switch {
	case err == nil:
		switch entry.Disposition {
		case hierarchy.DispositionPrompt:
			log.Warn().Str("dest", rel).Msg("file already exists, returning to UI")
			outcomes.WithLabelValues("conflict").Inc()
			return Guidance{Status: StatusConflict}, nil
		case hierarchy.DispositionAbort:
			log.Warn().Str("dest", rel).Msg("file already exists, abandoning copy request")
			outcomes.WithLabelValues("abandoned").Inc()
			return Guidance{Status: StatusAbandoned}, nil
		}
		log.Info().Str("dest", rel).Msg("overwriting existing file")
	case errors.Is(err, os.ErrNotExist):
	default:
		outcomes.WithLabelValues("error").Inc()
		return Guidance{}, err
	}

	err = r.write(ctx, entry, rel)
	if err != nil {
		outcomes.WithLabelValues("error").Inc()
		return Guidance{}, err
	}

	outcomes.WithLabelValues("copied").Inc()
	log.Info().Str("src", entry.Source.String()).Str("dest", rel).Msg("materialized tutorial")
	return Guidance{Status: StatusCopied, Dest: filepath.ToSlash(rel)}, nil
}

func (r *Resolver) write(ctx context.Context, entry hierarchy.Entry, rel string) (err error) {
	err = r.fs.MkdirAll(filepath.Dir(rel), 0o755)
	if err != nil {
		return err
	}

	f, err := r.fs.Create(rel)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	switch src := entry.Source.(type) {
	case hierarchy.RemoteSource:
		_, err = r.transfer.Fetch(ctx, src.URL, f)
	case hierarchy.LocalSource:
		_, err = r.transfer.Copy(src.Path, f)
	default:
		err = errors.New("entry has no source")
	}
	return err
}

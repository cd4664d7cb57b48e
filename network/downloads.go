package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrTransfer wraps every failure to move bytes from a source to a
// destination.
var ErrTransfer = errors.New("transfer failed")

const DefaultTimeout = 30 * time.Second

// Transfer moves notebook bytes from a URL or a local file into a writer.
type Transfer struct {
	Client *http.Client
}

func NewTransfer(timeout time.Duration) *Transfer {
	return &Transfer{
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch streams the body of src into w.
func (t *Transfer) Fetch(ctx context.Context, src *url.URL, w io.Writer) (int64, error) {
	log.Info().Str("src", src.String()).Msg("downloading notebook")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.String(), nil)
	if err != nil {
		return 0, errors.Join(ErrTransfer, err)
	}
	req.Header.Set("User-Agent", "rsp-tutorials")

	cli := t.Client
	if cli == nil {
		cli = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := cli.Do(req)
	if err != nil {
		return 0, errors.Join(ErrTransfer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: GET %s returned %d", ErrTransfer, src, resp.StatusCode)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, errors.Join(ErrTransfer, err)
	}

	transferredBytes.WithLabelValues("fetch").Add(float64(n))
	log.Debug().Str("src", src.String()).Int64("bytes", n).Msg("done downloading notebook")
	return n, nil
}

// Copy writes the contents of the local file src into w.
func (t *Transfer) Copy(src string, w io.Writer) (int64, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, errors.Join(ErrTransfer, err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return n, errors.Join(ErrTransfer, err)
	}

	transferredBytes.WithLabelValues("copy").Add(float64(n))
	log.Debug().Str("src", src).Int64("bytes", n).Msg("done copying notebook")
	return n, nil
}

package monitoring

import (
	"errors"
	"net/http"
	"net/http/pprof"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// PProf serves the runtime profiles on their own listener, away from the
// API.
type PProf struct {
	srv     *http.Server
	started atomic.Bool
}

func NewPProf(listenAddr string) *PProf {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &PProf{
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start listens in the background. Repeated calls are ignored.
func (p *PProf) Start() {
	if !p.started.CompareAndSwap(false, true) {
		log.Debug().Msg("PProf server already started, ignoring duplicate Start call")
		return
	}

	go func() {
		log.Info().Str("addr", p.srv.Addr).Msg("Starting PProf server")
		err := p.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("PProf server failed")
		}
	}()
}

func (p *PProf) Stop() error {
	if !p.started.Load() {
		return nil
	}
	log.Info().Msg("Shutting down PProf server")
	return p.srv.Close()
}

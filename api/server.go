package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/lsst-sqre/rsp-jupyter-extensions/api/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/lsst-sqre/rsp-jupyter-extensions/materialize"
	"github.com/lsst-sqre/rsp-jupyter-extensions/network"
	"github.com/lsst-sqre/rsp-jupyter-extensions/source"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Transferer is what the handlers need to move notebook and landing page
// bytes.
type Transferer interface {
	materialize.Transferer
}

type API struct {
	cfg config.Config
	srv *http.Server

	// NewCloner and NewTransfer build the per-request collaborators.
	NewCloner   func(env *config.Environment) source.Cloner
	NewTransfer func(env *config.Environment) Transferer
}

func NewAPI(cfg config.Config) *API {
	return &API{
		cfg: cfg,
		NewCloner: func(env *config.Environment) source.Cloner {
			return source.NewGitCloner(env.CloneTimeout)
		},
		NewTransfer: func(env *config.Environment) Transferer {
			return network.NewTransfer(env.FetchTimeout)
		},
	}
}

func (a *API) Close() error {
	if a.srv == nil {
		return fmt.Errorf("no server available")
	}
	return a.srv.Close()
}

// Handler builds the routes under the configured path prefix.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter()
	prefix := a.cfg.APICfg.PathPrefix

	outline := types.NewOutline()

	outline.RegisterGetRoute(r, "/", IndexHandler())
	outline.RegisterGetRoute(r, "/version", VersionHandler())

	outline.RegisterGetRoute(r, prefix+"/tutorials", MenuHandler(a))
	outline.RegisterPostRoute(r, prefix+"/tutorials", CopyHandler(a))
	outline.RegisterGetRoute(r, prefix+"/landing", LandingHandler(a))
	outline.RegisterPrefixRoute(r, prefix+"/ghostwriter/", GhostwriterHandler(prefix))

	outline.RegisterGetRoute(r, "/logs", LogHandler(a.cfg.LogFile))
	outline.RegisterGetRoute(r, "/api", outline.OutlineHandler())

	r.Handle("/metrics", promhttp.Handler())
	r.Use(loggingMiddleware)

	return a.cors().Handler(r)
}

// cors only admits the configured origins; with none configured every
// cross-origin request is refused.
func (a *API) cors() *cors.Cors {
	allowed := a.cfg.APICfg.AllowedOrigins
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(allowed, origin)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
}

// Addr is the address Serve listens on.
func (a *API) Addr() string {
	return net.JoinHostPort(a.cfg.APICfg.ListenAddress, strconv.FormatInt(a.cfg.APICfg.Port, 10))
}

func (a *API) Serve() {
	defer log.Info().Msg("API module stopped")

	a.srv = &http.Server{
		Handler:           a.Handler(),
		Addr:              a.Addr(),
		WriteTimeout:      120 * time.Second,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Msg(fmt.Sprintf("RSP tutorials API now listening on %s", a.srv.Addr))
	err := a.srv.ListenAndServe()
	if err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("API server failed")
			return
		}
	}
}

// environment expands the configuration for one request.
func (a *API) environment() (*config.Environment, error) {
	return a.cfg.Environment()
}

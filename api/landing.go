package api

import (
	"net/http"

	"github.com/lsst-sqre/rsp-jupyter-extensions/landing"
	"github.com/rs/zerolog/log"
)

// LandingHandler answers with an empty document once the landing page files
// are in the cache directory.
func LandingHandler(a *API) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		env, err := a.environment()
		if err != nil {
			writeError(w, err)
			return
		}

		err = landing.NewPage(env, a.NewTransfer(env)).Ensure()
		if err != nil {
			log.Error().Err(err).Msg("cannot stash landing page")
			writeError(w, err)
			return
		}

		writeJSON(w, struct{}{})
	}
}

package api

import (
	"io"
	"mime"
	"net/http"

	"github.com/lsst-sqre/rsp-jupyter-extensions/api/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/materialize"
	"github.com/lsst-sqre/rsp-jupyter-extensions/tutorials"
	"github.com/rs/zerolog/log"
)

// maxEntrySize bounds a copy request body.
const maxEntrySize = 64 << 10

func MenuHandler(a *API) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		env, err := a.environment()
		if err != nil {
			log.Error().Err(err).Msg("cannot build tutorials menu")
			writeError(w, err)
			return
		}

		h, err := tutorials.NewMenu(env, a.NewCloner(env)).Hierarchy(req.Context())
		if err != nil {
			log.Error().Err(err).Msg("cannot build tutorials menu")
			writeError(w, err)
			return
		}

		log.Info().Msg("sending tutorials menu")
		writeJSON(w, h.ToPrimitive())
	}
}

func CopyHandler(a *API) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		// browsers send text/plain cross-origin without a preflight
		mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			writeErrorStatus(w, http.StatusUnsupportedMediaType, "request body must be application/json")
			return
		}

		body, err := io.ReadAll(io.LimitReader(req.Body, maxEntrySize))
		if err != nil {
			writeErrorStatus(w, http.StatusBadRequest, err.Error())
			return
		}

		var p map[string]any
		err = json.Unmarshal(body, &p)
		if err != nil {
			writeErrorStatus(w, http.StatusBadRequest, "request body is not a JSON object")
			return
		}

		env, err := a.environment()
		if err != nil {
			writeError(w, err)
			return
		}

		g, err := materialize.NewResolver(env.Home, a.NewTransfer(env)).Resolve(req.Context(), p)
		if err != nil {
			log.Error().Err(err).Msg("tutorial copy failed")
			writeError(w, err)
			return
		}

		switch g.Status {
		case materialize.StatusCopied:
			log.Info().Str("dest", g.Dest).Msg("replying with destination")
			writeJSON(w, types.CopyResponse{Dest: g.Dest})
		case materialize.StatusConflict:
			writeErrorStatus(w, http.StatusConflict, "destination already exists")
		default:
			w.WriteHeader(g.Status)
		}
	}
}

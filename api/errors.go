package api

import (
	"errors"
	"net/http"

	"github.com/lsst-sqre/rsp-jupyter-extensions/api/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/hierarchy"
	"github.com/lsst-sqre/rsp-jupyter-extensions/materialize"
	"github.com/rs/zerolog/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, hierarchy.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, materialize.ErrContainment):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, statusFor(err), err.Error())
}

func writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
	if err != nil {
		log.Error().Err(err).Msg("could not write error response")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Info().
			Str("method", req.Method).
			Str("url", req.URL.RequestURI()).
			Str("user_agent", req.UserAgent()).
			Str("remote_addr", req.RemoteAddr).
			Msg("incoming http request")
		next.ServeHTTP(w, req)
	})
}

// LogHandler returns the tail of the service log file. The "bytes" header
// sets how much, 100 by default. An empty file name disables it.
func LogHandler(logFileName string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, req *http.Request) {
		if logFileName == "" {
			writeErrorStatus(w, http.StatusForbidden, "log api is disabled")
			return
		}

		size := 100
		if v := req.Header.Get("bytes"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeErrorStatus(w, http.StatusBadRequest, "failed to parse int")
				return
			}
			size = n
		}

		logf, err := os.Open(logFileName)
		if err != nil {
			writeErrorStatus(w, http.StatusInternalServerError, "failed to get logs")
			return
		}
		defer logf.Close()

		buf := make([]byte, size)
		n, err := readLogFile(logf, buf)
		if err != nil {
			writeErrorStatus(w, http.StatusInternalServerError, "failed to get logs")
			return
		}
		writeJSON(w, string(buf[:n]))
	}
}

// readLogFile fills buf from the end of logFile. Files shorter than buf are
// read whole.
func readLogFile(logFile *os.File, buf []byte) (read int, err error) {
	fi, err := logFile.Stat()
	if err != nil {
		return 0, err
	}
	offset := fi.Size() - int64(len(buf))
	if offset < 0 {
		offset = 0
	}

	read, err = logFile.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Error().Err(err).Msg("could not read log file")
		return read, err
	}
	return read, nil
}

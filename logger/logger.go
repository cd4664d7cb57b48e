package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetLevel sets the global log level. Unknown names leave it unchanged.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("unknown log level, keeping current level")
		return
	}
	zerolog.SetGlobalLevel(lvl)
}

// Tee sends the global logger to stderr and, when fileName is set, appends
// to that file too. The returned closer releases the file.
func Tee(fileName string) (io.Closer, error) {
	if fileName == "" {
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(os.ExpandEnv(fileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(os.Stderr, f))
	return f, nil
}

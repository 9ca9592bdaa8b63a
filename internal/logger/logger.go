package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global zerolog logger and returns it.
func Setup(level string, pretty bool) zerolog.Logger {
	return SetupWriter(os.Stdout, level, pretty)
}

func SetupWriter(out io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

// Wraps zerolog logger, ensuring the timestamp goes in the beginning.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var Base zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.DurationFieldInteger = true
	zerolog.TimeFieldFormat = time.RFC3339Nano
	Base = zerolog.New(os.Stderr).With().Stack().Logger()
}

func Info() *zerolog.Event {
	return Base.Info().Timestamp()
}

func Warn() *zerolog.Event {
	return Base.Warn().Timestamp()
}

func Error() *zerolog.Event {
	return Base.Error().Timestamp()
}

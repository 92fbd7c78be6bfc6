//go:build testing

package log

import (
	"os"

	"github.com/rs/zerolog"
)

func init() {
	Base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Stack().Logger()
}

// Package testhelper silences zerolog for tests. Import it for side effects
// from a package's test files; set CALQ_TEST_LOG to keep logs on.
package testhelper

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	if testing.Testing() && os.Getenv("CALQ_TEST_LOG") == "" {
		Silence()
	}
}

// Silence disables every zerolog logger, including the global one.
func Silence() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	log.Logger = zerolog.Nop()
}

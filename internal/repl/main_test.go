package repl

import (
	"os"
	"testing"

	// Import shared test helper for logging configuration
	_ "github.com/lacquerai/calq/internal/testhelper"
)

// TestMain runs before all tests in this package
func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

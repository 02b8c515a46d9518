package cli

import (
	"io"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

// sessionConfig holds the settings that shape a calculator session, resolved
// from flags, CALQ_* environment variables and the config file.
type sessionConfig struct {
	Prompt string
	Banner bool
	Color  bool
}

func loadSessionConfig(out io.Writer) sessionConfig {
	return sessionConfig{
		Prompt: viper.GetString("prompt"),
		Banner: !viper.GetBool("quiet"),
		Color:  !viper.GetBool("no-color") && isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

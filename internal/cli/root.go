package cli

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lacquerai/calq/internal/repl"
	"github.com/lacquerai/calq/internal/style"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
	prompt   string
	noColor  bool
	quiet    bool
)

// rootCmd represents the base command; running it starts a calculator session
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calq",
		Short: "calq - a small interactive calculator",
		Long: `calq reads one calculation per line, evaluates it and prints the result.

Each line holds two numbers and one of the operators +, -, * or /:

  5 + 3
  10 / 4
  -2.5 * 4

Type 'quit' (or press Ctrl-D) to leave.`,
		Version: getVersion(),
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.calq/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "disabled", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&prompt, "prompt", "", fmt.Sprintf("prompt shown before each calculation (default %q)", strings.TrimSpace(repl.DefaultPrompt)))
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress the banner and other non-essential output")

	// Bind flags to viper
	_ = viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("prompt", cmd.Flags().Lookup("prompt"))
	_ = viper.BindPFlag("no-color", cmd.Flags().Lookup("no-color"))
	_ = viper.BindPFlag("quiet", cmd.PersistentFlags().Lookup("quiet"))

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command through fang. It is called by main.main().
func Execute() error {
	return fang.Execute(context.Background(), rootCmd, fang.WithColorSchemeFunc(func(lightDark lipgloss.LightDarkFunc) fang.ColorScheme {
		return fang.ColorScheme{
			Base:           style.PrimaryTextColor,
			Title:          style.AccentColor,
			Description:    style.PrimaryTextColor,
			Codeblock:      style.CodeColor,
			Program:        style.AccentColor,
			DimmedArgument: style.MutedColor,
			Comment:        style.MutedColor,
			Flag:           style.InfoColor,
			FlagDefault:    style.MutedColor,
			Command:        style.SuccessColor,
			QuotedString:   style.WarningColor,
			Argument:       style.PrimaryTextColor,
			Help:           style.InfoColor,
			Dash:           style.MutedColor,
			ErrorHeader:    [2]color.Color{style.ErrorColor, style.ErrorBgColor},
			ErrorDetails:   style.ErrorColor,
		}
	}))
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	viper.SetDefault("prompt", repl.DefaultPrompt)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in ~/.calq, the working directory and ./.calq
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.calq")
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath(".calq")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables, e.g. CALQ_LOG_LEVEL
	viper.SetEnvPrefix("CALQ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if !viper.GetBool("quiet") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// initLogging configures the global logger
func initLogging(w io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch viper.GetString("log-level") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
}

// runSession starts the interactive loop on the command's stdin and stdout.
// SIGINT and SIGTERM end the session the same way 'quit' does.
func runSession(cmd *cobra.Command) error {
	cfg := loadSessionConfig(cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader, err := repl.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	// Closing the reader unblocks a pending read once a signal arrives
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Received interrupt signal, closing input")
			_ = reader.Close()
		case <-done:
		}
	}()

	printer := style.NewPrinter(cfg.Color)

	log.Debug().
		Bool("color", printer.Colored()).
		Bool("banner", cfg.Banner).
		Msg("Starting calculator session")

	session := repl.NewSession(reader, cmd.OutOrStdout(),
		repl.WithPrompt(cfg.Prompt),
		repl.WithBanner(cfg.Banner),
		repl.WithPrinter(printer),
		repl.WithLogger(log.Logger),
	)

	return session.Run(ctx)
}

// getVersion returns the version string shown by --version
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)", Version, Commit, Date, GoVersion)
}

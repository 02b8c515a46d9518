package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/lacquerai/calq/internal/style"
	"github.com/spf13/cobra"
)

// Build-time variables (set by goreleaser or build scripts)
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	BuiltBy   = "unknown"
	GoVersion = runtime.Version()
)

func newVersionCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version information for calq, including build details.`,
		Example: `
  calq version                # Show version info
  calq version --output json  # Show version info as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showVersion(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

// VersionInfo represents version information
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

func currentVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		BuiltBy:   BuiltBy,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func showVersion(w io.Writer, outputFormat string) error {
	info := currentVersionInfo()

	switch outputFormat {
	case "json":
		style.PrintJSON(w, info)
	case "yaml":
		style.PrintYAML(w, info)
	case "text", "":
		printText(w, info)
	default:
		return fmt.Errorf("unsupported output format %q (use text, json or yaml)", outputFormat)
	}
	return nil
}

func printText(w io.Writer, info VersionInfo) {
	fmt.Fprintf(w, "calq %s\n", info.Version)
	fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
	fmt.Fprintf(w, "  built:    %s by %s\n", info.Date, info.BuiltBy)
	fmt.Fprintf(w, "  go:       %s\n", info.GoVersion)
	fmt.Fprintf(w, "  platform: %s\n", info.Platform)
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import shared test helper for logging configuration
	_ "github.com/lacquerai/calq/internal/testhelper"
)

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

// executeCommand runs a fresh root command with stdin and args and returns
// everything it wrote.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_RunsSession(t *testing.T) {
	output, err := executeCommand(t, "5 + 3\n10 / 0\nquit\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(output, "Simple Calculator\nOperations: +, -, *, /\nType 'quit' to exit\n"))
	assert.Contains(t, output, "\nEnter calculation (e.g., 5 + 3): Result: 8.0\n")
	assert.Contains(t, output, "Result: Error: Division by zero\n")
	assert.True(t, strings.HasSuffix(output, "Goodbye!\n"))
	assert.NotContains(t, output, "\x1b[", "output to a buffer must not be styled")
}

func TestRootCommand_EndOfInput(t *testing.T) {
	output, err := executeCommand(t, "2 * 21")
	require.NoError(t, err)
	assert.Contains(t, output, "Result: 42.0\n")
	assert.True(t, strings.HasSuffix(output, "Goodbye!\n"))
}

func TestRootCommand_Quiet(t *testing.T) {
	output, err := executeCommand(t, "quit\n", "--quiet")
	require.NoError(t, err)
	assert.NotContains(t, output, "Simple Calculator")
	assert.Contains(t, output, "Goodbye!")
}

func TestRootCommand_PromptFlag(t *testing.T) {
	output, err := executeCommand(t, "1 + 1\nquit\n", "--quiet", "--prompt", "calc> ")
	require.NoError(t, err)
	assert.Equal(t, "calc> Result: 2.0\ncalc> Goodbye!\n", output)
}

func TestRootCommand_PromptFromEnvironment(t *testing.T) {
	t.Setenv("CALQ_PROMPT", "env> ")

	output, err := executeCommand(t, "quit\n", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "env> Goodbye!\n", output)
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	_, err := executeCommand(t, "", "5+3")
	assert.Error(t, err)
}

func TestGetVersion(t *testing.T) {
	version := getVersion()
	assert.Contains(t, version, "dev")
	assert.Contains(t, version, "unknown")
}

func TestInitLogging(t *testing.T) {
	require.NotPanics(t, func() {
		initLogging(io.Discard)
	})
}

func TestInitConfig(t *testing.T) {
	require.NotPanics(t, func() {
		initConfig()
	})
}

func TestGlobalFlags(t *testing.T) {
	cmd := newRootCmd()

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "string", flag.Value.Type())

	flag = cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, flag)
	assert.Equal(t, "disabled", flag.DefValue)

	flag = cmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())
	assert.Equal(t, "q", flag.Shorthand)

	flag = cmd.Flags().Lookup("no-color")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)

	flag = cmd.Flags().Lookup("prompt")
	require.NotNil(t, flag)
	assert.Equal(t, "string", flag.Value.Type())
}

func TestCommandAvailability(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "version", cmd.Name())
}

func TestLoadSessionConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--no-color", "--quiet"})
	cmd.RunE = func(cmd *cobra.Command, args []string) error { return nil }
	require.NoError(t, cmd.Execute())

	cfg := loadSessionConfig(new(bytes.Buffer))
	assert.False(t, cfg.Banner)
	assert.False(t, cfg.Color)
	assert.NotEmpty(t, cfg.Prompt)

	assert.False(t, isTerminal(new(bytes.Buffer)))
}

// syncBuffer lets the test read output while the session goroutine writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRootCommand_CancelClosesInput(t *testing.T) {
	stdinR, stdinW := io.Pipe()
	t.Cleanup(func() { _ = stdinW.Close() })

	out := &syncBuffer{}
	cmd := newRootCmd()
	cmd.SetIn(stdinR)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--quiet"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.ExecuteContext(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Enter calculation")
	}, 5*time.Second, 10*time.Millisecond, "session never prompted")

	// nothing is ever written to stdin, so only cancellation can end the read
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}
	assert.True(t, strings.HasSuffix(out.String(), "Goodbye!\n"))
}

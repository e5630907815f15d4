package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propgen.dev/pkg/propgen/internal/domain/mocks"
)

// withMockWorkflow swaps the package workflow for a mock for the duration of the test.
func withMockWorkflow(t *testing.T) *mocks.MockWorkflow {
	t.Helper()

	mockWorkflow := mocks.NewMockWorkflow(t)
	original := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = original })

	return mockWorkflow
}

// newTestRoot builds a fresh root command with the given subcommands and
// points the log file at a temporary directory.
func newTestRoot(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *bytes.Buffer, string) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(subcommands...)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out, filepath.Join(t.TempDir(), "propgen.log")
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "propgen", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{inputFlagName, excludeFlagName, logFileFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	assert.Equal(t, "i", cmd.PersistentFlags().Lookup(inputFlagName).Shorthand)
	assert.Equal(t, "x", cmd.PersistentFlags().Lookup(excludeFlagName).Shorthand)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd, out, logPath := newTestRoot(t, newGenerateCmd(), newListCmd())
	cmd.SetArgs([]string{"--log-file", logPath})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "companion Kotlin property class")
	assert.Contains(t, out.String(), "generate")
	assert.Contains(t, out.String(), "list")
}

func TestRootCmd_ConfiguresLogger(t *testing.T) {
	cmd, _, logPath := newTestRoot(t)
	cmd.SetArgs([]string{"--log-file", logPath, "--verbose"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, logPath, viper.GetString(logFilenameKey))
	assert.True(t, viper.GetBool(logVerboseKey))
	require.NotNil(t, globalLogger)
	assert.True(t, globalLogger.Enabled(t.Context(), -4), "verbose enables debug")
}

func TestBindFlagToConfig_InputFlag(t *testing.T) {
	cmd, _, logPath := newTestRoot(t)
	cmd.SetArgs([]string{"--log-file", logPath, "-i", "./sources", "-x", "internal/**", "-x", "**/*Test.java"})

	require.NoError(t, cmd.Execute())

	args := sourceArgsFromViper()
	assert.Equal(t, "./sources", string(args.Input))
	assert.Equal(t, []string{"internal/**", "**/*Test.java"}, args.Exclude)
}

func TestInit(t *testing.T) {
	// Test that init() created all the necessary instances
	assert.NotNil(t, ui)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, workflow)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(_ *cobra.Command, _ []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd

		Execute() // Exits with status 1.
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(output), "error occurred")
}

package cli

import (
	"fmt"
	"os"
	"sync"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "reposnap",
	Short: "Snapshot a GitHub repository into a single markdown document",
	Long: `Reposnap fetches a GitHub repository's tree and file contents over the
REST API, writes them as one markdown document, and reports token counts
against language-model context windows. Trees and blob contents are cached
on disk so unchanged repositories cost almost no API calls.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetOutput(os.Stderr)
		if flagVerbose {
			logger.SetLevel(logger.DebugLevel)
		} else {
			logger.SetLevel(logger.WarnLevel)
		}
	},
}

var setupOnce sync.Once

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	setupOnce.Do(func() {
		rootCmd.AddCommand(snapshotCmd)
		rootCmd.AddCommand(reposCmd)
		rootCmd.AddCommand(cacheCmd)
		rootCmd.AddCommand(versionCmd)

		rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	})

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// fail prints the error and records the exit code for Run. Handlers return
// its nil result so cobra does not swallow the code behind a usage error.
func fail(code int, err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = code
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print reposnap version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "reposnap version %s\n", version)
	},
}

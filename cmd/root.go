// Package cmd implements the command-line interface for loxtest.
// loxtest builds the interpreter, runs it against every case in the test
// corpus and exits non-zero when the build fails or a case misbehaves.
package cmd

import (
	"os"

	"github.com/ajxudir/loxtest/pkg/catalog"
	"github.com/ajxudir/loxtest/pkg/cmdexec"
	"github.com/ajxudir/loxtest/pkg/config"
	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/ajxudir/loxtest/pkg/harness"
	"github.com/ajxudir/loxtest/pkg/preflight"
	"github.com/ajxudir/loxtest/pkg/verbose"
	"github.com/spf13/cobra"
)

var exitFunc = os.Exit
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "loxtest [-v|--verbose]",
	Short: "Build the interpreter and run its test corpus",
	Long: `Build the interpreter, then run it once per test case.

Cases in tests/ must exit 0. Cases in tests/error/ must exit non-zero.
A case that does not behave as expected is run a second time with its
output shown, so failures are visible without --verbose.

Settings can be changed in an optional .loxtest.yml (or .loxtest.toml)
in the current directory.`,
	Args:          usageArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	RunE: runTests,
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Build succeeded and every case passed
//   - 1: At least one case failed
//   - 2: The build failed
//   - 3: Configuration or usage error
//   - 4: The build tool or the interpreter could not be started
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errors.PrintErrorWithHints(rootCmd.ErrOrStderr(), []error{err}, verboseFlag)
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show build and interpreter output for every case")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.NewExitError(errors.ExitConfigError, err)
	})
}

// usageArgs rejects positional arguments as a usage error.
func usageArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	return nil
}

// runTests executes one full run in the current directory.
//
// It performs the following operations:
//   - Step 1: Load .loxtest.yml, .loxtest.toml or the built-in defaults
//   - Step 2: Set up the case catalog and check the build tool exists
//   - Step 3: Run build, Normal cases and ExpectError cases
//   - Step 4: Print the verdict table and summary
//
// Returns:
//   - error: nil when the run passed, otherwise the typed error deciding the exit code
func runTests(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	cases, err := catalog.New(cfg)
	if err != nil {
		return err
	}

	if check := preflight.ValidateBuild(cfg); check.HasErrors() {
		return errors.NewLaunchError(check.Errors[0].Command, check.Err())
	}

	invoker := cmdexec.NewProcessInvoker(cfg.WorkingDir)
	invoker.Stdout = cmd.OutOrStdout()
	invoker.Stderr = cmd.ErrOrStderr()

	verbosity := harness.VerbosityFromFlag(verboseFlag)
	source := cfg.Source()
	if source == "" {
		source = "built-in defaults"
	}
	verbose.Infof("Running in %s mode from %s (config: %s)", verbosity, cfg.WorkingDir, source)

	result, err := harness.NewOrchestrator(cfg, invoker, cases, verbosity).Run()
	if result != nil {
		result.WriteReport(cmd.OutOrStdout(), verbosity == harness.Verbose)
	}
	return err
}

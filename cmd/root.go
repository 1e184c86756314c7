package cmd

import (
	"errors"
	"os"

	"docsync/internal/config"
	"docsync/internal/document"
	"docsync/internal/remote"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error.
	ExitCodeError = 1
	// ExitCodeRemoteFailure indicates the document service rejected an operation.
	ExitCodeRemoteFailure = 2
	// ExitCodeInvalidInput indicates an invalid event, property or configuration.
	ExitCodeInvalidInput = 3
)

// rootCmd represents the base command for the docsync application.
var rootCmd = &cobra.Command{
	Use:   "docsync",
	Short: "Keep Systems Manager documents in sync with CloudFormation",
	Long: `docsync reconciles an AWS Systems Manager document with the desired state
declared by a CloudFormation custom resource.

Run 'docsync lambda' as the custom resource handler, or replay a lifecycle
event locally with 'docsync plan' (dry run) and 'docsync reconcile'.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "docsync version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	if remote.IsRemoteError(err) {
		return ExitCodeRemoteFailure
	}

	var invalidEvent *eventFileError
	if document.IsValidationError(err) || config.IsConfigurationError(err) || errors.As(err, &invalidEvent) {
		return ExitCodeInvalidInput
	}

	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config-path", "", "Configuration directory containing config.yaml (default: $HOME/.config/docsync)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logFormat, "log-format", "", "Log format: text or json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.region, "region", "", "AWS region (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.profile, "profile", "", "AWS shared config profile (overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.endpoint, "endpoint", "", "Systems Manager endpoint override, e.g. a local emulator")
	rootCmd.PersistentFlags().StringVar(&globalFlags.tagPrefix, "tag-prefix", "", "Prefix of the system tag keys (overrides config)")
}

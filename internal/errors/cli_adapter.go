package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if vse, ok := As(err); ok {
		return a.exitCodeFromVaultSync(vse)
	}

	return 1
}

// exitCodeFromVaultSync maps VaultSyncError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromVaultSync(err *VaultSyncError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategorySource:
		return 3 // Missing vault
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryGit, CategoryNotify:
		return 8 // External system error
	case CategoryMetadata, CategoryDocument, CategoryFileSystem, CategoryLedger:
		return 11 // Sync error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if vse, ok := As(err); ok {
		return a.formatVaultSync(vse)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatVaultSync formats a VaultSyncError for display.
func (a *CLIErrorAdapter) formatVaultSync(err *VaultSyncError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	case CategorySource:
		if p, ok := err.Context["path"]; ok {
			return fmt.Sprintf("%s: %v", err.Message, p)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if vse, ok := As(err); ok {
		return vse.Category == CategoryInternal || vse.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if vse, ok := As(err); ok {
		level := slogLevelFromSeverity(vse.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(vse.Category)),
		}
		for k, v := range vse.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if vse.Cause != nil {
			attrs = append(attrs, slog.String("cause", vse.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, vse.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts VaultSyncError severity to slog level.
func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

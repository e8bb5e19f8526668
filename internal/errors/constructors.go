package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *VaultSyncError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *VaultSyncError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *VaultSyncError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Sync errors

// MissingSourceRoot aborts a run before any document is processed.
func MissingSourceRoot(path string) *VaultSyncError {
	return New(CategorySource, SeverityFatal, "source directory does not exist").
		WithContext("path", path)
}

// MetadataParseFailure marks a front matter block that matched a delimiter
// convention but could not be parsed. The document is treated as having no
// metadata.
func MetadataParseFailure(convention string, cause error) *VaultSyncError {
	return Wrap(cause, CategoryMetadata, SeverityWarning, "failed to parse front matter").
		WithContext("convention", convention)
}

// DocumentProcessingFailure fails a single document; the run continues.
func DocumentProcessingFailure(path string, cause error) *VaultSyncError {
	return Wrap(cause, CategoryDocument, SeverityError, "failed to process document").
		WithContext("path", path)
}

func DestinationError(operation string, cause error) *VaultSyncError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "destination operation failed").
		WithContext("operation", operation)
}

// Integration errors

func GitSyncError(url string, cause error) *VaultSyncError {
	return Wrap(cause, CategoryGit, SeverityFatal, "vault checkout failed").
		WithContext("url", url)
}

func LedgerError(operation string, cause error) *VaultSyncError {
	return Wrap(cause, CategoryLedger, SeverityWarning, "ledger operation failed").
		WithContext("operation", operation)
}

func NotifyError(subject string, cause error) *VaultSyncError {
	return Wrap(cause, CategoryNotify, SeverityWarning, "notification failed").
		WithContext("subject", subject)
}

// Internal errors

func InternalError(message string, cause error) *VaultSyncError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

// Package git keeps a local checkout of a vault that lives in a Git
// repository.
//
// Client.Sync clones the configured remote into the source directory when no
// checkout exists yet, and otherwise fetches and fast-forwards the configured
// branch. A local branch that has diverged from the remote is reported as a
// RemoteDivergedError and left untouched, as is a checkout with uncommitted
// edits (LocalChangesError).
//
// Clone and fetch failures other than authentication and missing
// repositories are retried according to the configured retry policy.
package git

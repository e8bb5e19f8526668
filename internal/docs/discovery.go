package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/vaultsync/internal/docs/errors"
	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
	"git.home.luguber.info/inful/vaultsync/internal/logfields"
)

// MarkdownExt is the only extension picked up from the vault.
const MarkdownExt = ".md"

// DocFile represents a discovered note.
type DocFile struct {
	Path         string // Path to the file, rooted at the vault root as given
	RelativePath string // Path relative to the vault root, slash separated
	Name         string // Base name including extension; the output file name
	Extension    string // File extension
	Content      []byte // File content (loaded on demand)
}

// Stem returns the base name without its final extension.
func (df *DocFile) Stem() string {
	return strings.TrimSuffix(df.Name, df.Extension)
}

// LoadContent loads the content of a note.
func (df *DocFile) LoadContent() error {
	if df.Content != nil {
		return nil // Already loaded
	}

	content, err := os.ReadFile(df.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, df.Path, err)
	}

	df.Content = content
	return nil
}

// Discover walks root and returns every Markdown note in lexical path order.
//
// Any path component below root that starts with "." hides the file, so
// .obsidian/ and .trash/ are never visited. A missing root, or a root that is
// not a directory, is a MissingSourceRoot error.
func Discover(root string) ([]DocFile, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, verrors.MissingSourceRoot(root)
	}

	var files []DocFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return walkError(root, path, d, err)
		}
		if path == root {
			return nil
		}

		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdownFile(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}

		files = append(files, DocFile{
			Path:         path,
			RelativePath: filepath.ToSlash(relPath),
			Name:         d.Name(),
			Extension:    filepath.Ext(d.Name()),
		})
		slog.Debug("Discovered note", logfields.Path(filepath.ToSlash(relPath)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrVaultWalkFailed, root, err)
	}

	slog.Debug("Vault discovery complete", logfields.Source(root), logfields.Count(len(files)))
	return files, nil
}

// walkError decides how a walk error at path affects discovery. Only an
// unreadable root fails the walk; unreadable entries below it are skipped
// with a warning.
func walkError(root, path string, d fs.DirEntry, err error) error {
	if path == root {
		return err
	}
	slog.Warn("Skipping unreadable vault entry", logfields.Path(path), logfields.Error(err))
	if d != nil && d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

// IsNotePath reports whether rel, a path relative to the vault root, names a
// note Discover would return.
func IsNotePath(rel string) bool {
	return !IsHiddenPath(rel) && isMarkdownFile(rel)
}

// IsHiddenPath reports whether any component of rel starts with ".".
func IsHiddenPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if isHidden(part) {
			return true
		}
	}
	return false
}

// isMarkdownFile matches the extension case-sensitively.
func isMarkdownFile(filename string) bool {
	return filepath.Ext(filename) == MarkdownExt
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

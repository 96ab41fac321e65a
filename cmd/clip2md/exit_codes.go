package main

import (
	"errors"
	"os"

	clip2md "github.com/alnah/go-clip2md"
	"github.com/alnah/go-clip2md/internal/config"
	"github.com/alnah/go-clip2md/internal/fileutil"
	"github.com/alnah/go-clip2md/internal/store"
)

// Exit codes for the clip2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful command
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, empty clipboard
	ExitStore   = 4 // Paste session database errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Store errors (exit 4)
	if errors.Is(err, ErrStoreAccess) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrAmbiguousID) ||
		errors.Is(err, store.ErrEmptyContent) ||
		errors.Is(err, store.ErrEmptyKind) {
		return ExitStore
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrEmptyClipboard) ||
		errors.Is(err, ErrEmptySession) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, clip2md.ErrInvalidSourceKind) ||
		errors.Is(err, clip2md.ErrInvalidOutputMode) ||
		errors.Is(err, clip2md.ErrEmptyMarkdown) ||
		errors.Is(err, fileutil.ErrExtensionEmpty) ||
		errors.Is(err, fileutil.ErrExtensionPathTraversal) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedExtension) ||
		errors.Is(err, ErrOutputIsInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrConflictingKinds) {
		return ExitUsage
	}

	return ExitGeneral
}

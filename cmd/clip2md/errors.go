package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUsage                = errors.New("invalid usage")
	ErrNoInput              = errors.New("no input specified")
	ErrReadInput            = errors.New("failed to read input")
	ErrWriteOutput          = errors.New("failed to write output")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrOutputIsInput        = errors.New("output path equals input path")
	ErrInvalidWorkerCount   = errors.New("invalid worker count")
	ErrConflictingKinds     = errors.New("only one of --html, --text, --pdf may be set")
	ErrEmptyClipboard       = errors.New("clipboard is empty")
	ErrEmptySession         = errors.New("paste session is empty")
	ErrStoreAccess          = errors.New("paste store unavailable")
)

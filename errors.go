package clip2md

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidSourceKind = errors.New("invalid source kind")
	ErrInvalidOutputMode = errors.New("invalid output mode")
	ErrEmptyMarkdown     = errors.New("markdown content cannot be empty")
)

package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// RowParseError describes a source row that was skipped during loading.
type RowParseError struct {
	Line int
	Row  []string
	Err  error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("line %d: skipping row %q: %v", e.Line, strings.Join(e.Row, ","), e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// FileAccessError is returned when the presence source cannot be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read presence data %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

type PresenceRepository interface {
	// Load parses the whole source into a fresh index.
	Load(ctx context.Context) (PresenceIndex, error)
}

// Fingerprinter is implemented by sources that can cheaply tell whether
// their content changed since the last load.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

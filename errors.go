package grid

import "errors"

var (
	// ErrInvalidConfig is returned by New when the configuration is unusable.
	ErrInvalidConfig = errors.New("grid: invalid config")

	// ErrDisposed is returned by operations on a disposed grid that report errors.
	ErrDisposed = errors.New("grid: disposed")

	// ErrNotEditable is returned when a cell's column does not accept edits.
	ErrNotEditable = errors.New("grid: cell not editable")

	// ErrPermissionDenied is returned when the permission check rejects a record.
	ErrPermissionDenied = errors.New("grid: permission denied")

	// ErrNoLoader is returned by LoadMore when the provider cannot load more.
	ErrNoLoader = errors.New("grid: provider cannot load more records")

	// ErrNoEditor is returned when no edit callback or Editor provider is configured.
	ErrNoEditor = errors.New("grid: no edit callback configured")

	// ErrRecordNotFound is returned when a record id or index does not resolve.
	ErrRecordNotFound = errors.New("grid: record not found")
)

package pdfdoc

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed engine or
	// Document.
	ErrClosed = errors.New("pdfdoc: engine is closed")

	// ErrRendered is recorded when a document is modified after Render.
	ErrRendered = errors.New("pdfdoc: document already rendered")

	// ErrNoOutput is returned when an Inline or Download render has no sink.
	ErrNoOutput = errors.New("pdfdoc: no output writer configured")

	// ErrConfigNotFound and ErrConfigParse are returned by LoadConfig.
	ErrConfigNotFound = errors.New("pdfdoc: config file not found")
	ErrConfigParse    = errors.New("pdfdoc: failed to parse config")

	// Validation errors, recorded only in strict mode.
	ErrInvalidPageSize    = errors.New("pdfdoc: invalid page size")
	ErrInvalidOrientation = errors.New("pdfdoc: invalid orientation")
	ErrInvalidDestination = errors.New("pdfdoc: invalid output destination")
	ErrInvalidFont        = errors.New("pdfdoc: unknown font family")
	ErrInvalidMargin      = errors.New("pdfdoc: invalid margin")
	ErrInvalidFontSize    = errors.New("pdfdoc: invalid font size")
)

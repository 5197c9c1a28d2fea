package export

import "errors"

var (
	// ErrNotReady is returned when an export is requested before the wizard
	// reached the review step.
	ErrNotReady = errors.New("wizard not at review step")

	// ErrConversionUnavailable is returned when no configured PDF converter
	// could produce a verified PDF. DOCX output is still delivered.
	ErrConversionUnavailable = errors.New("no pdf converter available")
)

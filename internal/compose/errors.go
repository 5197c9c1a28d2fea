package compose

import "errors"

// ErrIncompleteData marks a form state missing required personal fields;
// callers must send the user back to the personal step instead of exporting.
var ErrIncompleteData = errors.New("incomplete form data")

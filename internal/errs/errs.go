// Package errs defines the sentinel error kinds shared across the
// derivation engine, keytab codec, and CLI front-end.
package errs

import "errors"

// Sentinel kinds. Wrap these with fmt.Errorf("...: %w", ErrX) so callers can
// errors.Is against a stable kind without matching message text.
var (
	ErrInvalidHex    = errors.New("invalid hex")
	ErrUnknownType   = errors.New("unknown type")
	ErrTruncatedFile = errors.New("truncated keytab file")
	ErrBadVersion    = errors.New("unsupported keytab version")
	ErrIO            = errors.New("i/o error")
	ErrCSV           = errors.New("malformed csv row")
	ErrMissingArg    = errors.New("missing required argument")
)

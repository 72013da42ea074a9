package tacozip

import "errors"

var (
	// ErrIO wraps any filesystem or host I/O failure: open, read, write,
	// flush, close, seek, or a buffer allocation that had to be reported
	// through the I/O path.
	ErrIO = errors.New("tacozip: i/o error")

	// ErrInvalidGhost is returned when an existing archive's first entry
	// does not match the required ghost layout (signature, name, extra
	// field id/size, or count byte out of range).
	ErrInvalidGhost = errors.New("tacozip: invalid ghost")

	// ErrInvalidParam is returned for caller contract violations detected
	// before any file is opened or truncated: nil/empty arguments, source
	// and archive name lists of different lengths, an archive name longer
	// than 65535 bytes, or an empty file list where one is required.
	ErrInvalidParam = errors.New("tacozip: invalid parameter")
)

// Code maps an error produced by this package to the legacy signed status
// codes from the format's external-interface contract (0 = OK, -1 = I/O,
// -3 = invalid ghost, -4 = invalid parameter). It exists for callers
// bridging to a C ABI or another language; pure Go callers should prefer
// errors.Is against the sentinels above.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidParam):
		return -4
	case errors.Is(err, ErrInvalidGhost):
		return -3
	default:
		return -1
	}
}

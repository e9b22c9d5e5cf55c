package envi

import "errors"

// Sentinel errors returned by the package. Callers can test for them with
// errors.Is; most are returned wrapped with file or index context.
var (
	// ErrNoHeaderValues is returned when a header or range file yields no
	// key/value pairs at all.
	ErrNoHeaderValues = errors.New("envi: no header values available")

	// ErrUnknownInterleave is returned for an interleave token other than
	// bsq, bil, or bip.
	ErrUnknownInterleave = errors.New("envi: unknown interleave format")

	// ErrUnknownDataType is returned for an unrecognized data type token.
	ErrUnknownDataType = errors.New("envi: unknown data type")

	// ErrInvalidExtents is returned when the full-cube extents are not all
	// strictly positive, or the data path is missing.
	ErrInvalidExtents = errors.New("envi: invalid data options")

	// ErrInvalidRange is returned when a requested sub-range is empty or
	// falls outside the full cube extents.
	ErrInvalidRange = errors.New("envi: invalid data range")

	// ErrIndexOutOfRange is returned by cube lookups with coordinates
	// outside the loaded sub-cube. The accompanying value is zero-valued.
	ErrIndexOutOfRange = errors.New("envi: index out of range")

	// ErrNoData is returned when writing before any successful read.
	ErrNoData = errors.New("envi: no cube loaded")
)

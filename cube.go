package envi

import "fmt"

// Cube is a loaded sub-volume: the decoded byte buffer for one read plus the
// shape, data type, and source interleave it was read with.
//
// The buffer is always BSQ-ordered over the loaded dimensions, whatever the
// source file's interleave was; the reader re-layouts samples as it decodes
// them. Lookups therefore always use BSQ addressing against the loaded
// (not full-file) dimensions.
type Cube struct {
	rows  int
	cols  int
	bands int

	interleave Interleave
	dtype      DataType

	raw []byte
}

func (c *Cube) Rows() int  { return c.rows }
func (c *Cube) Cols() int  { return c.cols }
func (c *Cube) Bands() int { return c.bands }

// Interleave is the source file's interleave the cube was read from. The
// in-memory buffer itself is BSQ regardless.
func (c *Cube) Interleave() Interleave { return c.interleave }

func (c *Cube) DataType() DataType { return c.dtype }

// NumDataPoints is the number of scalar samples in the loaded sub-volume.
func (c *Cube) NumDataPoints() int { return c.rows * c.cols * c.bands }

// Bytes returns the cube's raw buffer in BSQ order and host byte order.
// Callers must not modify it.
func (c *Cube) Bytes() []byte { return c.raw }

// SetData replaces the cube's buffer and metadata as a unit. The buffer
// length must match rows*cols*bands scalars of dt; on error the cube is left
// unchanged.
func (c *Cube) SetData(raw []byte, rows, cols, bands int, il Interleave, dt DataType) error {
	if rows <= 0 || cols <= 0 || bands <= 0 {
		return fmt.Errorf("%w: dimensions %dx%dx%d must be positive", ErrInvalidExtents, rows, cols, bands)
	}
	if want := rows * cols * bands * dt.ByteWidth(); len(raw) != want {
		return fmt.Errorf("%w: buffer is %d bytes, want %d for %dx%dx%d %s",
			ErrInvalidExtents, len(raw), want, rows, cols, bands, dt)
	}
	c.rows, c.cols, c.bands = rows, cols, bands
	c.interleave = il
	c.dtype = dt
	c.raw = raw
	return nil
}

// GetValue returns the sample at (row, col, band) in the loaded sub-cube.
// Out-of-range coordinates return a zero-valued scalar along with
// ErrIndexOutOfRange, so interactive consumers can shrug off stray
// coordinates without aborting.
func (c *Cube) GetValue(row, col, band int) (ScalarValue, error) {
	zero := ScalarValue{Type: c.dtype}
	if row < 0 || row >= c.rows {
		return zero, fmt.Errorf("%w: row %d must be between 0 and %d", ErrIndexOutOfRange, row, c.rows-1)
	}
	if col < 0 || col >= c.cols {
		return zero, fmt.Errorf("%w: col %d must be between 0 and %d", ErrIndexOutOfRange, col, c.cols-1)
	}
	if band < 0 || band >= c.bands {
		return zero, fmt.Errorf("%w: band %d must be between 0 and %d", ErrIndexOutOfRange, band, c.bands-1)
	}

	width := c.dtype.ByteWidth()
	offset := bsqIndex(c.rows, c.cols, row, col, band) * int64(width)
	value := ScalarValue{Type: c.dtype}
	copy(value.raw[:width], c.raw[offset:offset+int64(width)])
	return value, nil
}

// GetSpectrum returns the sample at (row, col) for every loaded band, in
// ascending band order.
func (c *Cube) GetSpectrum(row, col int) ([]ScalarValue, error) {
	spectrum := make([]ScalarValue, 0, c.bands)
	for band := 0; band < c.bands; band++ {
		value, err := c.GetValue(row, col, band)
		if err != nil {
			return nil, err
		}
		spectrum = append(spectrum, value)
	}
	return spectrum, nil
}

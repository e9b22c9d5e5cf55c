package envi

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
)

// DataRange selects a rectangular sub-volume of the full cube. All bounds are
// half-open, zero-indexed, and relative to the full extents in DataOptions.
type DataRange struct {
	StartRow, EndRow   int
	StartCol, EndCol   int
	StartBand, EndBand int
}

// FullRange covers the entire cube described by opts.
func FullRange(opts *DataOptions) DataRange {
	return DataRange{
		EndRow:  opts.Rows,
		EndCol:  opts.Cols,
		EndBand: opts.Bands,
	}
}

func (r DataRange) NumRows() int  { return r.EndRow - r.StartRow }
func (r DataRange) NumCols() int  { return r.EndCol - r.StartCol }
func (r DataRange) NumBands() int { return r.EndBand - r.StartBand }

// Validate checks the range against the full extents in opts: every start
// must be non-negative, every end within the extent, and every span
// non-empty.
func (r DataRange) Validate(opts *DataOptions) error {
	if r.StartRow < 0 || r.EndRow > opts.Rows {
		return fmt.Errorf("%w: rows [%d, %d) must be within [0, %d]",
			ErrInvalidRange, r.StartRow, r.EndRow, opts.Rows)
	}
	if r.StartCol < 0 || r.EndCol > opts.Cols {
		return fmt.Errorf("%w: cols [%d, %d) must be within [0, %d]",
			ErrInvalidRange, r.StartCol, r.EndCol, opts.Cols)
	}
	if r.StartBand < 0 || r.EndBand > opts.Bands {
		return fmt.Errorf("%w: bands [%d, %d) must be within [0, %d]",
			ErrInvalidRange, r.StartBand, r.EndBand, opts.Bands)
	}
	if r.NumRows() <= 0 {
		return fmt.Errorf("%w: row range [%d, %d) is empty", ErrInvalidRange, r.StartRow, r.EndRow)
	}
	if r.NumCols() <= 0 {
		return fmt.Errorf("%w: col range [%d, %d) is empty", ErrInvalidRange, r.StartCol, r.EndCol)
	}
	if r.NumBands() <= 0 {
		return fmt.Errorf("%w: band range [%d, %d) is empty", ErrInvalidRange, r.StartBand, r.EndBand)
	}
	return nil
}

// LoadRange reads a range config file from the bucket. The file uses the same
// key = value format as headers, with keys "start row", "end row",
// "start col", "end col", "start band", and "end band". Missing keys keep
// their zero value; the result is validated at read time, not here.
func LoadRange(ctx context.Context, bucket *blob.Bucket, key string) (DataRange, error) {
	values, err := readConfigValues(ctx, bucket, key)
	if err != nil {
		return DataRange{}, err
	}
	if len(values) == 0 {
		return DataRange{}, fmt.Errorf("%w: %s", ErrNoHeaderValues, key)
	}

	var rng DataRange
	fields := []struct {
		name string
		dst  *int
	}{
		{"start row", &rng.StartRow},
		{"end row", &rng.EndRow},
		{"start col", &rng.StartCol},
		{"end col", &rng.EndCol},
		{"start band", &rng.StartBand},
		{"end band", &rng.EndBand},
	}
	for _, f := range fields {
		if err := setIntValue(values, f.name, key, f.dst); err != nil {
			return DataRange{}, err
		}
	}
	return rng, nil
}

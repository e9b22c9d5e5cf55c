package envi

import (
	"fmt"
	"strings"
)

// Interleave is the physical ordering of (row, col, band) samples in an ENVI
// binary file.
type Interleave int

const (
	// BSQ (band-sequential) stores whole bands back to back: band > row > col.
	BSQ Interleave = iota
	// BIL (band-interleaved-by-line) stores one line per band per row:
	// row > band > col.
	BIL
	// BIP (band-interleaved-by-pixel) stores the full spectrum of each pixel
	// contiguously: row > col > band.
	BIP
)

func (il Interleave) String() string {
	switch il {
	case BSQ:
		return "bsq"
	case BIL:
		return "bil"
	case BIP:
		return "bip"
	default:
		return fmt.Sprintf("Interleave(%d)", int(il))
	}
}

// ParseInterleave maps an ENVI "interleave" token to an Interleave.
func ParseInterleave(s string) (Interleave, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bsq":
		return BSQ, nil
	case "bil":
		return BIL, nil
	case "bip":
		return BIP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterleave, s)
	}
}

// bsqIndex is the element index of (row, col, band) in a BSQ-ordered buffer
// with the given dimensions. Loaded cubes are always addressed this way.
func bsqIndex(rows, cols, row, col, band int) int64 {
	return int64(band)*int64(rows)*int64(cols) + int64(row)*int64(cols) + int64(col)
}

// VisitRange invokes fn once per sample of rng, in the physical order the
// interleave lays samples out on disk, so that a reader following the
// sequence moves strictly forward through the file.
//
// abs is the element index of the sample within the full cube (fullRows ×
// fullCols × fullBands, element units, before scaling by the scalar width).
// local is the BSQ element index of the same sample within the rng-sized
// sub-cube; storing each sample at local yields a BSQ-ordered buffer
// regardless of the source interleave. Enumeration stops at the first error
// from fn.
func (il Interleave) VisitRange(fullRows, fullCols, fullBands int, rng DataRange, fn func(abs, local int64) error) error {
	rows := rng.NumRows()
	cols := rng.NumCols()

	switch il {
	case BSQ:
		pixelsPerBand := int64(fullRows) * int64(fullCols)
		for band := rng.StartBand; band < rng.EndBand; band++ {
			bandIndex := int64(band) * pixelsPerBand
			for row := rng.StartRow; row < rng.EndRow; row++ {
				for col := rng.StartCol; col < rng.EndCol; col++ {
					abs := bandIndex + int64(row)*int64(fullCols) + int64(col)
					local := bsqIndex(rows, cols, row-rng.StartRow, col-rng.StartCol, band-rng.StartBand)
					if err := fn(abs, local); err != nil {
						return err
					}
				}
			}
		}
	case BIL:
		valuesPerRow := int64(fullBands) * int64(fullCols)
		for row := rng.StartRow; row < rng.EndRow; row++ {
			rowIndex := int64(row) * valuesPerRow
			for band := rng.StartBand; band < rng.EndBand; band++ {
				for col := rng.StartCol; col < rng.EndCol; col++ {
					abs := rowIndex + int64(band)*int64(fullCols) + int64(col)
					local := bsqIndex(rows, cols, row-rng.StartRow, col-rng.StartCol, band-rng.StartBand)
					if err := fn(abs, local); err != nil {
						return err
					}
				}
			}
		}
	case BIP:
		valuesPerRow := int64(fullCols) * int64(fullBands)
		for row := rng.StartRow; row < rng.EndRow; row++ {
			rowIndex := int64(row) * valuesPerRow
			for col := rng.StartCol; col < rng.EndCol; col++ {
				for band := rng.StartBand; band < rng.EndBand; band++ {
					abs := rowIndex + int64(col)*int64(fullBands) + int64(band)
					local := bsqIndex(rows, cols, row-rng.StartRow, col-rng.StartCol, band-rng.StartBand)
					if err := fn(abs, local); err != nil {
						return err
					}
				}
			}
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownInterleave, int(il))
	}
	return nil
}

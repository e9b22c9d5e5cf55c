// Package dataset exposes an ENVI hyperspectral cube as row batches of gomlx
// tensors, for feeding the cube into training or inference pipelines without
// loading the whole file.
package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/gomlx/gomlx/pkg/core/tensors"

	envi "github.com/envikit/go-envi"
)

// Dataset iterates over an ENVI cube in batches of full rows.
type Dataset struct {
	reader *envi.Reader

	// CurrentRow is the next full-cube row NextBatch will read.
	CurrentRow int
}

// New wraps a configured reader. The dataset takes over the reader's cube
// slot: every NextBatch call replaces the reader's loaded cube.
func New(reader *envi.Reader) *Dataset {
	return &Dataset{reader: reader}
}

// NextBatch reads the next batchSize rows (every column and band) and returns
// them as a tensor of shape [rows, cols, bands]. The final batch may be
// short. Returns io.EOF once the cube is exhausted.
func (d *Dataset) NextBatch(ctx context.Context, batchSize int) (*tensors.Tensor, error) {
	opts := d.reader.Options()
	if d.CurrentRow >= opts.Rows {
		return nil, io.EOF
	}

	start := d.CurrentRow
	end := min(start+batchSize, opts.Rows)
	rng := envi.DataRange{
		StartRow: start, EndRow: end,
		EndCol:  opts.Cols,
		EndBand: opts.Bands,
	}
	if err := d.reader.ReadData(ctx, rng); err != nil {
		return nil, err
	}

	tensor, err := toTensor(d.reader.Cube())
	if err != nil {
		return nil, err
	}
	d.CurrentRow = end
	return tensor, nil
}

// toTensor converts a loaded cube to a [rows, cols, bands] tensor of the
// cube's own scalar type. The cube buffer is BSQ (band-major), so samples are
// re-ordered pixel-major here.
func toTensor(cube *envi.Cube) (*tensors.Tensor, error) {
	dims := []int{cube.Rows(), cube.Cols(), cube.Bands()}
	switch cube.DataType() {
	case envi.Byte:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Byte), dims...), nil
	case envi.Int16:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Int16), dims...), nil
	case envi.Int32:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Int32), dims...), nil
	case envi.Float32:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Float32), dims...), nil
	case envi.Float64:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Float64), dims...), nil
	case envi.Uint16:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Uint16), dims...), nil
	case envi.Uint32:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Uint32), dims...), nil
	case envi.Uint64, envi.ULong:
		return tensors.FromFlatDataAndDimensions(flatten(cube, envi.ScalarValue.Uint64), dims...), nil
	default:
		return nil, fmt.Errorf("unsupported data type: %s", cube.DataType())
	}
}

// flatten walks the cube pixel-major (row > col > band) and extracts each
// sample with get.
func flatten[T any](cube *envi.Cube, get func(envi.ScalarValue) T) []T {
	data := make([]T, 0, cube.NumDataPoints())
	for row := 0; row < cube.Rows(); row++ {
		for col := 0; col < cube.Cols(); col++ {
			for band := 0; band < cube.Bands(); band++ {
				value, _ := cube.GetValue(row, col, band)
				data = append(data, get(value))
			}
		}
	}
	return data
}

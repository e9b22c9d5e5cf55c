package envi

import (
	"context"
	"fmt"
)

// WriteData writes the loaded cube to key in the reader's bucket. The output
// is the cube's buffer in its stored (BSQ) order, re-encoded to the byte
// order declared in the data options, so the written file reads back
// identically with the cube's own dimensions as full extents, BSQ interleave,
// full range. Output is fully contiguous; no seeking is involved.
func (r *Reader) WriteData(ctx context.Context, key string) error {
	if r.cube == nil {
		return ErrNoData
	}

	writer, err := r.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", key, err)
	}

	if err := r.writeCube(writer.Write); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish writing %s: %w", key, err)
	}
	return nil
}

func (r *Reader) writeCube(write func([]byte) (int, error)) error {
	raw := r.cube.Bytes()
	if r.opts.BigEndian == r.bigEndianHost {
		_, err := write(raw)
		return err
	}

	// Host and declared order differ: restore the on-disk order one scalar
	// at a time.
	width := r.cube.DataType().ByteWidth()
	scalar := make([]byte, width)
	for i := 0; i+width <= len(raw); i += width {
		copy(scalar, raw[i:i+width])
		ReverseBytes(scalar)
		if _, err := write(scalar); err != nil {
			return err
		}
	}
	return nil
}

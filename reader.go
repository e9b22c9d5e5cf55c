package envi

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
)

// Reader reads rectangular sub-volumes of an ENVI cube out of a blob bucket.
// Memory use is bounded by the requested range, not the file size: the reader
// seeks past everything outside the range.
//
// A Reader is not safe for concurrent use; each call site owns its reader and
// the cube it populates.
type Reader struct {
	bucket *blob.Bucket
	opts   *DataOptions

	// Host byte order, detected once at construction.
	bigEndianHost bool

	cube *Cube
}

// NewReader opens the bucket at bucketURL (for local data, a file:// URL with
// the fileblob driver linked in) and prepares a reader for the cube described
// by opts.
func NewReader(ctx context.Context, bucketURL string, opts *DataOptions) (*Reader, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	return &Reader{
		bucket:        bucket,
		opts:          opts,
		bigEndianHost: hostBigEndian(),
	}, nil
}

// NewReaderFromHeader opens the bucket and builds the data options from the
// header file at headerKey.
func NewReaderFromHeader(ctx context.Context, bucketURL, headerKey string) (*Reader, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	opts, err := LoadHeader(ctx, bucket, headerKey)
	if err != nil {
		bucket.Close()
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		bucket.Close()
		return nil, err
	}
	return &Reader{
		bucket:        bucket,
		opts:          opts,
		bigEndianHost: hostBigEndian(),
	}, nil
}

// Options returns the data options the reader was configured with.
func (r *Reader) Options() *DataOptions { return r.opts }

// Cube returns the sub-volume loaded by the last successful ReadData, or nil
// before the first read.
func (r *Reader) Cube() *Cube { return r.cube }

// Close releases the underlying bucket.
func (r *Reader) Close() error { return r.bucket.Close() }

// ReadData loads the sub-volume selected by rng. The range is validated
// against the full extents before any I/O. On any failure the previously
// loaded cube (if any) is left untouched.
//
// Samples are visited in the file's physical order, so the stream only has to
// reposition when the range skips data. Each decoded scalar is byte-reversed
// if the declared file order differs from the host's, and stored at its
// BSQ-local position in the cube buffer so that lookups work identically for
// all three source interleaves. A short read is fatal.
func (r *Reader) ReadData(ctx context.Context, rng DataRange) error {
	if err := rng.Validate(r.opts); err != nil {
		return err
	}

	width := r.opts.DataType.ByteWidth()
	rows, cols, bands := rng.NumRows(), rng.NumCols(), rng.NumBands()
	raw := make([]byte, rows*cols*bands*width)
	reverse := r.opts.BigEndian != r.bigEndianHost

	stream := &cubeStream{bucket: r.bucket, key: r.opts.DataPath}
	defer stream.Close()

	scalar := make([]byte, width)
	prev := int64(-2) // forces the initial seek
	err := r.opts.Interleave.VisitRange(r.opts.Rows, r.opts.Cols, r.opts.Bands, rng,
		func(abs, local int64) error {
			if abs != prev+1 {
				offset := (int64(r.opts.HeaderOffset) + abs) * int64(width)
				if err := stream.seek(ctx, offset); err != nil {
					return err
				}
			}
			if err := stream.read(scalar); err != nil {
				return err
			}
			if reverse {
				ReverseBytes(scalar)
			}
			copy(raw[local*int64(width):], scalar)
			prev = abs
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.opts.DataPath, err)
	}

	cube := &Cube{}
	if err := cube.SetData(raw, rows, cols, bands, r.opts.Interleave, r.opts.DataType); err != nil {
		return err
	}
	r.cube = cube
	return nil
}

// cubeStream is a forward-moving view of the raw cube file. Sequential reads
// ride the current range reader; a seek closes it and opens a new one at the
// target offset.
type cubeStream struct {
	bucket *blob.Bucket
	key    string
	reader *blob.Reader
}

func (s *cubeStream) seek(ctx context.Context, offset int64) error {
	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			return err
		}
		s.reader = nil
	}
	reader, err := s.bucket.NewRangeReader(ctx, s.key, offset, -1, nil)
	if err != nil {
		return fmt.Errorf("failed to open %s at offset %d: %w", s.key, offset, err)
	}
	s.reader = reader
	return nil
}

func (s *cubeStream) read(p []byte) error {
	_, err := io.ReadFull(s.reader, p)
	return err
}

func (s *cubeStream) Close() error {
	if s.reader == nil {
		return nil
	}
	return s.reader.Close()
}

package envi

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"gocloud.dev/blob"
)

// maxHeaderDepth bounds recursion through "header" redirect keys so a
// self-referencing header errors out instead of looping.
const maxHeaderDepth = 8

// DataOptions describes the full on-disk cube: where it lives and how to
// decode it. The extents are the size of the entire file, not of the range
// being read.
type DataOptions struct {
	// DataPath is the bucket key of the raw binary cube file.
	DataPath string

	Interleave Interleave
	DataType   DataType

	// BigEndian reports the declared byte order of the file.
	BigEndian bool

	// HeaderOffset is the length of an attached header to skip, measured in
	// scalar widths.
	HeaderOffset int

	// Full-cube extents. All three must be strictly positive before a read.
	Rows  int
	Cols  int
	Bands int
}

// Validate checks that the options describe a readable cube.
func (o *DataOptions) Validate() error {
	if o.DataPath == "" {
		return fmt.Errorf("%w: no data path", ErrInvalidExtents)
	}
	if o.Rows <= 0 || o.Cols <= 0 || o.Bands <= 0 {
		return fmt.Errorf("%w: extents %dx%dx%d must be positive",
			ErrInvalidExtents, o.Rows, o.Cols, o.Bands)
	}
	if o.HeaderOffset < 0 {
		return fmt.Errorf("%w: negative header offset %d", ErrInvalidExtents, o.HeaderOffset)
	}
	return nil
}

// LoadHeader reads an ENVI header file from the bucket and returns the
// options it describes. Unset keys keep their defaults (BSQ, float32,
// little-endian). A "header" key redirects to another header file in the
// same bucket; values parsed so far carry over.
func LoadHeader(ctx context.Context, bucket *blob.Bucket, key string) (*DataOptions, error) {
	opts := &DataOptions{Interleave: BSQ, DataType: Float32}
	if err := applyHeader(ctx, bucket, key, opts, 0); err != nil {
		return nil, err
	}
	return opts, nil
}

func applyHeader(ctx context.Context, bucket *blob.Bucket, key string, opts *DataOptions, depth int) error {
	values, err := readConfigValues(ctx, bucket, key)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: %s", ErrNoHeaderValues, key)
	}

	if v, ok := values["data"]; ok {
		opts.DataPath = v
	}

	// A "header" key means the data parameters live in another header file.
	if v, ok := values["header"]; ok {
		if depth >= maxHeaderDepth {
			return fmt.Errorf("%w: header redirect chain too deep at %s", ErrNoHeaderValues, key)
		}
		return applyHeader(ctx, bucket, v, opts, depth+1)
	}

	if v, ok := values["interleave"]; ok {
		il, err := ParseInterleave(v)
		if err != nil {
			return err
		}
		opts.Interleave = il
	}

	if v, ok := values["data type"]; ok {
		dt, err := ParseDataType(v)
		if err != nil {
			return err
		}
		opts.DataType = dt
	}

	if v, ok := values["byte order"]; ok {
		opts.BigEndian = v == "1"
	}

	if v, ok := values["header offset"]; ok {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid header offset %q in %s: %w", v, key, err)
		}
		opts.HeaderOffset = offset
	}

	// The samples/lines axis assignment depends on the interleave: for BSQ,
	// samples count rows and lines count columns; for BIL and BIP it is the
	// other way around.
	samplesKey, linesKey := "samples", "lines"
	if opts.Interleave == BSQ {
		if err := setIntValue(values, samplesKey, key, &opts.Rows); err != nil {
			return err
		}
		if err := setIntValue(values, linesKey, key, &opts.Cols); err != nil {
			return err
		}
	} else {
		if err := setIntValue(values, linesKey, key, &opts.Rows); err != nil {
			return err
		}
		if err := setIntValue(values, samplesKey, key, &opts.Cols); err != nil {
			return err
		}
	}

	if err := setIntValue(values, "bands", key, &opts.Bands); err != nil {
		return err
	}

	return nil
}

// setIntValue parses values[name] into dst if present.
func setIntValue(values map[string]string, name, file string, dst *int) error {
	v, ok := values[name]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q in %s: %w", name, v, file, err)
	}
	*dst = n
	return nil
}

// readConfigValues parses a line-oriented "key = value" file from the bucket.
// Comment lines starting with '#' and lines without a delimiter are skipped;
// keys and values are whitespace-trimmed.
func readConfigValues(ctx context.Context, bucket *blob.Bucket, key string) (map[string]string, error) {
	reader, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer reader.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		split := strings.Index(line, "=")
		if split <= 0 {
			continue
		}
		k := strings.TrimSpace(line[:split])
		if k == "" {
			continue
		}
		values[k] = strings.TrimSpace(line[split+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return values, nil
}

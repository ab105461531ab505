package fileutil

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// DefaultMaxFileSize bounds how much of a content file is read into memory (4MB).
const DefaultMaxFileSize int64 = 4 << 20

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFile reads the whole file at path, refusing files larger than limit
// bytes. A limit <= 0 means DefaultMaxFileSize. The file handle is closed
// before ReadFile returns on every path.
func ReadFile(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Fail fast when the size is already known to be over the limit
	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", path, info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds limit %d", path, limit)
	}

	return data, nil
}

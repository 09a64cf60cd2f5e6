package util

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// CloseFileFunc closes f and logs a failure; meant for defer.
func CloseFileFunc(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Warn("close file", "name", f.Name(), "err", err)
	}
}

// IsEOF reports whether err marks the end of a file (clean or short read).
func IsEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

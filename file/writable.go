package file

import (
	"os"

	"github.com/pkg/errors"
)

// WithWritable temporarily adds owner-write permission to path, runs fn,
// and restores the original permission bits. The restore happens even if
// fn returns an error, so a protected file is never left writable.
func WithWritable(path string, fn func() error) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "stat before widening permissions")
	}

	orig := info.Mode().Perm()

	if err := os.Chmod(path, orig|0200); err != nil {
		return errors.Wrap(err, "acquiring owner-write")
	}

	defer func() {
		// Restore on the original path; if fn renamed the file the caller
		// is responsible for carrying permissions to the new name.
		if Exists(path) {
			_ = os.Chmod(path, orig)
		}
	}()

	return fn()
}

// ReplaceInFile reads path, applies fn to its content, and writes the
// result back in place with owner-write temporarily acquired. The file's
// permission bits end unchanged regardless of outcome.
func ReplaceInFile(path string, fn func(content string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading for rewrite")
	}

	return WithWritable(path, func() error {
		out := fn(string(data))
		if err := os.WriteFile(path, []byte(out), 0); err != nil {
			return errors.Wrap(err, "writing rewritten content")
		}
		return nil
	})
}

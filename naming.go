package iconset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxCollisions bounds the numbered candidates tried for a single name.
const maxCollisions = 10000

// candidate returns path for n == 0 and stem_n.ext otherwise.
func candidate(path string, n int) string {
	if n == 0 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), n, ext)
}

// createUnique creates a new file at path, or at the first free numbered
// variant of it. Existing files are never truncated.
func createUnique(path string) (*os.File, string, error) {
	for n := 0; n <= maxCollisions; n++ {
		p := candidate(path, n)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, p, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", newError(IOFailure, "create", p, err)
		}
	}
	return nil, "", &Error{Kind: IOFailure, Op: "create", Path: path, Msg: "no free file name left"}
}

// writeUnique writes data to a new file named after path and returns the
// name actually used.
func writeUnique(path string, data []byte) (string, error) {
	f, p, err := createUnique(path)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", newError(IOFailure, "write", p, err)
	}
	if err := f.Close(); err != nil {
		return "", newError(IOFailure, "close", p, err)
	}
	return p, nil
}

// reserveUnique creates an empty file at a free variant of path, for tools
// that write their output to a named destination.
func reserveUnique(path string) (string, error) {
	f, p, err := createUnique(path)
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", newError(IOFailure, "close", p, err)
	}
	return p, nil
}

// mkdirUnique creates a new directory at path or at a free numbered variant.
func mkdirUnique(path string) (string, error) {
	for n := 0; n <= maxCollisions; n++ {
		p := candidate(path, n)
		err := os.Mkdir(p, 0o755)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", newError(IOFailure, "mkdir", p, err)
		}
	}
	return "", &Error{Kind: IOFailure, Op: "mkdir", Path: path, Msg: "no free directory name left"}
}

// ensureDir creates dir and its parents when missing.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newError(IOFailure, "mkdir", dir, err)
	}
	return nil
}

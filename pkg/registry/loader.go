package registry

import (
	"errors"
	"io/fs"
	"os"
)

// LoadFile reads a registry artifact from disk. A missing file is equivalent
// to an empty registry: the build-time collaborator writes no artifact when
// it discovers no templates, and that must not fail resolution.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return nil, &LoadError{Source: path, Err: err}
	}

	reg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, &LoadError{Source: path, Err: le.Err}
		}
		return nil, err
	}
	return reg, nil
}

// LoadFS reads a registry artifact from an fs.FS, with the same missing-file
// semantics as LoadFile. Useful for embedded artifacts.
func LoadFS(fsys fs.FS, path string) (*Registry, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return nil, &LoadError{Source: path, Err: err}
	}

	reg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, &LoadError{Source: path, Err: le.Err}
		}
		return nil, err
	}
	return reg, nil
}

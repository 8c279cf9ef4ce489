// Package preload evaluates the --require files in the runtime before the
// harness entry point is invoked.
//
// Files are loaded strictly in the order given and loading is fail-fast: the
// first file that cannot be read or that raises while evaluating stops the
// run, and no later file is attempted.
package preload

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Loader is the slice of the runtime the preloader needs.
type Loader interface {
	Load(name string, src []byte) error
}

// OpenError reports a require file that could not be read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("File %s could not be loaded.", e.Path)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// LoadError reports a require file whose evaluation raised in the runtime.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsOpenError returns true if err is or wraps an *OpenError.
func IsOpenError(err error) bool {
	var oe *OpenError
	return errors.As(err, &oe)
}

// IsLoadError returns true if err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Preloader loads require files into a runtime.
type Preloader struct {
	loader   Loader
	readFile func(string) ([]byte, error)
	logger   *slog.Logger
}

// New creates a preloader for loader. A nil logger uses slog.Default.
func New(loader Loader, logger *slog.Logger) *Preloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preloader{loader: loader, readFile: os.ReadFile, logger: logger}
}

// Load evaluates each path in order and stops at the first failure.
// It returns the number of files loaded successfully.
func (p *Preloader) Load(paths []string) (int, error) {
	for i, path := range paths {
		src, err := p.readFile(path)
		if err != nil {
			p.logger.Debug("require file unreadable", "index", i, "path", path, "error", err)
			return i, &OpenError{Path: path, Err: err}
		}

		p.logger.Debug("loading require file", "index", i, "path", path, "bytes", len(src))
		if err := p.loader.Load(path, src); err != nil {
			return i, &LoadError{Path: path, Err: err}
		}
	}

	p.logger.Debug("preload complete", "files", len(paths))
	return len(paths), nil
}

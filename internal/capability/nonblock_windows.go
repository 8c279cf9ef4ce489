//go:build windows

package capability

import "errors"

const ioToggleSupported = false

var errUnsupported = errors.New("non-blocking mode is not supported on this platform")

func isNonblock(int) (bool, error) {
	return false, errUnsupported
}

func setNonblock(int, bool) error {
	return errUnsupported
}

package astrometrics

import "errors"

// ErrInvalidHex is returned when a hex string is not in XXYY form.
var ErrInvalidHex = errors.New("invalid hex")

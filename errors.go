// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import (
	"errors"
	"fmt"
	"strings"
)

const packageName = "charlcd"

// Errors returned by the driver. Configuration mistakes are reported
// immediately and never reach the bus; a GPIO failure aborts the current
// operation and is returned as-is wrapped with the package prefix.
var (
	// ErrNotInitialized is returned when any operation other than Init is
	// invoked before Init has completed.
	ErrNotInitialized = errors.New("display not initialized, call Init first")
	// ErrInvalidGeometry is returned by New for unsupported display sizes.
	ErrInvalidGeometry = errors.New("invalid display geometry")
	// ErrInvalidPosition is returned when a cursor position is outside the
	// configured geometry. Positions are never silently clamped.
	ErrInvalidPosition = errors.New("position out of range")
	// ErrInvalidSlot is returned for CGRAM slots outside 0..7.
	ErrInvalidSlot = errors.New("CGRAM slot out of range")
	// ErrInvalidPattern is returned when a glyph pattern row does not fit in
	// 5 bits.
	ErrInvalidPattern = errors.New("glyph pattern row out of range")
)

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

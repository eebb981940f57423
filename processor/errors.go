// SPDX-License-Identifier: EPL-2.0

package processor

import "errors"

var (
	// ErrNotFound is returned by Load when the input path does not exist.
	// It is always joined with fs.ErrNotExist.
	ErrNotFound = errors.New("audio file not found")

	// ErrBackendUnavailable means the provider needed for an operation was
	// not found when the Processor was built.
	ErrBackendUnavailable = errors.New("no audio backend available")

	// ErrUnsupportedType is returned for handles that are neither *Segment
	// nor *Samples, including nil.
	ErrUnsupportedType = errors.New("unsupported audio handle type")

	// ErrExportFailed wraps any failure of the underlying writer.
	ErrExportFailed = errors.New("export failed")

	ErrUnsupportedFormat  = errors.New("unsupported audio format")
	ErrEncoderUnavailable = errors.New("no encoder available for format")
	ErrInvalidRate        = errors.New("sample rate must be positive")
	ErrInvalidRepeat      = errors.New("repeat count must be at least 1")
)

package domain

import "errors"

// Error kinds from spec §7. These are sentinels, not a type hierarchy:
// callers match with errors.Is after %w-wrapping with file/context.
var (
	// ErrFormat marks a structural violation in a source file (bad tag,
	// bad length, an unknown ID encountered where none is allowed).
	ErrFormat = errors.New("domain: format error")

	// ErrCompressionNotSupported marks a WAV compression other than
	// PCM/IEEE float.
	ErrCompressionNotSupported = errors.New("domain: compression not supported")

	// ErrCombinationNotPossible marks failed split-stereo pairing
	// preconditions.
	ErrCombinationNotPossible = errors.New("domain: combination not possible")

	// ErrFileNotFound marks a sample referenced by a descriptor that is
	// missing on disk or in its archive.
	ErrFileNotFound = errors.New("domain: file not found")

	// ErrIO marks an underlying filesystem/ZIP error.
	ErrIO = errors.New("domain: io error")

	// ErrCancelled marks a detection/creation run that observed its
	// cancellation flag.
	ErrCancelled = errors.New("domain: cancelled")
)

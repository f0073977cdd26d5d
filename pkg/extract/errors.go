// Package extract groups the input-acquisition backends: each produces a
// single text string from one source (image, document, audio) or fails with
// one of the sentinel errors below. The failure classes are disjoint and
// terminal for the current action; callers never retry.
package extract

import "errors"

var (
	// ErrEmptyInput: the source held no usable content (blank question,
	// empty upload, extraction produced no text). No remote call is made.
	ErrEmptyInput = errors.New("no input provided")

	// ErrUnreadable: the source bytes could not be decoded or parsed.
	ErrUnreadable = errors.New("source could not be read")

	// ErrUnintelligible: the speech service answered but recognized nothing.
	ErrUnintelligible = errors.New("audio could not be understood")

	// ErrUnreachable: a remote extraction service could not be reached.
	ErrUnreachable = errors.New("extraction service unreachable")
)

package fade

import "errors"

var (
	// ErrSnapshotAlloc indicates snapshot storage could not be provided; no colors were touched
	ErrSnapshotAlloc = errors.New("fade: cannot allocate palette snapshot")

	// ErrUnsupportedColorMode indicates the host has neither RGB nor palette color addressing
	ErrUnsupportedColorMode = errors.New("fade: terminal cannot address colors finely enough to fade")

	// ErrRender wraps a failed default render
	ErrRender = errors.New("fade: render failed")

	// ErrWait wraps a failed deadline wait
	ErrWait = errors.New("fade: deadline wait failed")

	// ErrCanceled wraps the context error when the animation's context ends
	ErrCanceled = errors.New("fade: canceled")
)

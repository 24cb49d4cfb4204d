package terminal

// Backend abstracts the platform side of a terminal: raw mode, byte I/O, size and resize notification
type Backend interface {
	Init() error
	Fini()

	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, stopCh is closed, or an error occurs
	// A nil slice with nil error means the input is exhausted or stopped
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}

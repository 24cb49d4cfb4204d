//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollSliceMs bounds how long Read blocks before rechecking its stop channel
const pollSliceMs = 100

// ttyBackend drives stdout as the display and stdin as the quit-key source
// When stdin is not a terminal the display still works and Read reports no input
type ttyBackend struct {
	in, out  *os.File
	rawState *term.State
	interact bool

	winch     chan os.Signal
	winchDone chan struct{}
}

func newBackend() Backend {
	return &ttyBackend{in: os.Stdin, out: os.Stdout}
}

func (b *ttyBackend) Init() error {
	if !term.IsTerminal(int(b.out.Fd())) {
		return errors.New("stdout is not a terminal")
	}
	if !term.IsTerminal(int(b.in.Fd())) {
		return nil
	}

	state, err := term.MakeRaw(int(b.in.Fd()))
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	b.rawState = state
	b.interact = true
	return nil
}

func (b *ttyBackend) Fini() {
	if b.winch != nil {
		signal.Stop(b.winch)
		close(b.winch)
		<-b.winchDone
		b.winch = nil
	}
	if b.rawState != nil {
		term.Restore(int(b.in.Fd()), b.rawState)
		b.rawState = nil
	}
}

// Size reports the output window; 80x24 when the ioctl fails
func (b *ttyBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(int(b.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

func (b *ttyBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read waits for the next input chunk in short poll slices so stopCh is honored
func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if !b.interact {
		<-stopCh
		return nil, nil
	}

	fd := int(b.in.Fd())
	buf := make([]byte, 64)
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		ready, err := readable(fd, pollSliceMs)
		if err != nil {
			return nil, err
		}
		if !ready {
			continue
		}

		n, err := unix.Read(fd, buf)
		switch {
		case err == unix.EINTR || err == unix.EAGAIN:
			continue
		case err != nil:
			return nil, err
		case n == 0:
			return nil, nil
		}
		return append([]byte(nil), buf[:n]...), nil
	}
}

// readable polls fd once; EINTR counts as not ready
func readable(fd, timeoutMs int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMs)
	if err == unix.EINTR {
		return false, nil
	}
	return n > 0, err
}

// SetResizeHandler calls handler with the new size after every SIGWINCH until Fini
func (b *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	b.winch = make(chan os.Signal, 1)
	b.winchDone = make(chan struct{})
	signal.Notify(b.winch, syscall.SIGWINCH)

	go func() {
		defer close(b.winchDone)
		for range b.winch {
			handler(b.Size())
		}
	}()
}

// resetTerminalMode puts the controlling tty back into cooked mode after a crash
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return
	}
	termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Iflag |= unix.ICRNL
	unix.IoctlSetTermios(fd, unix.TCSETS, termios)
}

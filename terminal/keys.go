package terminal

// Raw bytes recognized as a quit request while in raw mode
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// IsQuitKey reports whether a raw input chunk asks to quit: q, Q, Esc or Ctrl-C
// A lone Escape counts; Escape followed by more bytes is a sequence (arrows, mouse) and does not
func IsQuitKey(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if len(data) == 1 && data[0] == keyEscape {
		return true
	}
	for _, b := range data {
		switch b {
		case 'q', 'Q', keyCtrlC:
			return true
		case keyEscape:
			return false
		}
	}
	return false
}

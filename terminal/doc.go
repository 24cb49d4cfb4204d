// Package terminal provides direct ANSI terminal control for cell-grid output.
//
// Features:
//   - Color capability detection: none, ANSI 16, xterm-256 palette, 24-bit RGB
//   - Double-buffered output with cell-level diffing
//   - Per-channel default colors (SGR 39/49) so planes can inherit the terminal's ambient colors
//   - SIGWINCH resize notification
//   - Raw input forwarding and quit-key recognition
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal

//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVirtualTerminal turns on ANSI escape handling so the meter line can
// redraw itself in place.
func enableVirtualTerminal() {
	h := windows.Handle(os.Stdout.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return
	}

	_ = windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}

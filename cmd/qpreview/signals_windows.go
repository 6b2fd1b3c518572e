//go:build windows

package main

import "os"

// Windows only delivers os.Interrupt (Ctrl-C / Ctrl-Break).
func quitSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

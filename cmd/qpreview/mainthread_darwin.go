//go:build darwin && cgo

package main

import "golang.design/x/hotkey/mainthread"

// The Cocoa hotkey backend must own the main thread.
func runOnMainThread(fn func()) {
	mainthread.Init(fn)
}

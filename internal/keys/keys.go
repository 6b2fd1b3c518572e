// Package keys describes key events and how they map to navigation commands.
package keys

import (
	"fmt"
	"strings"
)

// Key names a physical key independent of the input backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyEscape
	KeyEnter
	KeySpace
	KeyQ
	KeyR
	KeyJ
	KeyK
	KeyN
	KeyP

	// KeyFileChanged is synthesized by the file watcher, never by a keyboard.
	KeyFileChanged
)

var keyNames = map[Key]string{
	KeyRight:  "Right",
	KeyLeft:   "Left",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyEscape: "Escape",
	KeyEnter:  "Enter",
	KeySpace:  "Space",
	KeyQ:      "Q",
	KeyR:      "R",
	KeyJ:      "J",
	KeyK:      "K",
	KeyN:      "N",
	KeyP:      "P",

	KeyFileChanged: "FileChanged",
}

var keyAliases = map[string]Key{
	"esc":        KeyEscape,
	"return":     KeyEnter,
	"arrowright": KeyRight,
	"arrowleft":  KeyLeft,
	"arrowup":    KeyUp,
	"arrowdown":  KeyDown,
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Typing reports whether k produces text in other applications (letters,
// Space, Enter).
func (k Key) Typing() bool {
	switch k {
	case KeyRight, KeyLeft, KeyUp, KeyDown, KeyEscape, KeyFileChanged, KeyUnknown:
		return false
	}
	return true
}

// ParseKey resolves a key name case-insensitively.
func ParseKey(name string) (Key, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if k != KeyFileChanged && strings.ToLower(n) == lower {
			return k, nil
		}
	}
	if k, ok := keyAliases[lower]; ok {
		return k, nil
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// AllKeys returns every named key in declaration order.
func AllKeys() []Key {
	out := make([]Key, 0, len(keyNames))
	for k := KeyRight; k <= KeyP; k++ {
		out = append(out, k)
	}
	return out
}

// Kind distinguishes presses from other occurrences.
type Kind int

const (
	Press Kind = iota
	Release
	Other
)

// Event is one input occurrence. Path is only set on KeyFileChanged events.
type Event struct {
	Key  Key
	Kind Kind
	Path string
}

// Pressed builds a press event.
func Pressed(k Key) Event {
	return Event{Key: k, Kind: Press}
}

// FileChanged builds the event the watcher emits for path.
func FileChanged(path string) Event {
	return Event{Key: KeyFileChanged, Kind: Press, Path: path}
}

func (e Event) String() string {
	switch e.Kind {
	case Press:
		return e.Key.String() + " press"
	case Release:
		return e.Key.String() + " release"
	default:
		return e.Key.String()
	}
}

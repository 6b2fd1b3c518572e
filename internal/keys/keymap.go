package keys

import (
	"fmt"
)

// Command is what the navigation loop does in response to a key.
type Command int

const (
	CmdNone Command = iota
	CmdNext
	CmdPrev
	CmdQuit
	CmdReload
)

func (c Command) String() string {
	switch c {
	case CmdNext:
		return "next"
	case CmdPrev:
		return "prev"
	case CmdQuit:
		return "quit"
	case CmdReload:
		return "reload"
	default:
		return "none"
	}
}

// Bindings lists key names per command, as read from configuration.
type Bindings struct {
	Next   []string `toml:"next"`
	Prev   []string `toml:"prev"`
	Quit   []string `toml:"quit"`
	Reload []string `toml:"reload"`
}

// Keymap resolves press events to commands.
type Keymap struct {
	commands map[Key]Command
	// configured holds keys bound explicitly by the user.
	configured map[Key]bool
}

// DefaultKeymap binds the arrows, Escape/Q and R.
func DefaultKeymap() *Keymap {
	return &Keymap{
		commands: map[Key]Command{
			KeyRight:  CmdNext,
			KeyDown:   CmdNext,
			KeyLeft:   CmdPrev,
			KeyUp:     CmdPrev,
			KeyEscape: CmdQuit,
			KeyQ:      CmdQuit,
			KeyR:      CmdReload,
		},
		configured: map[Key]bool{},
	}
}

// NewKeymap builds a keymap from configured bindings. Commands with no
// configured keys keep their default bindings, except for keys the
// configuration hands to another command.
func NewKeymap(b Bindings) (*Keymap, error) {
	km := DefaultKeymap()
	groups := []struct {
		cmd   Command
		names []string
	}{
		{CmdNext, b.Next},
		{CmdPrev, b.Prev},
		{CmdQuit, b.Quit},
		{CmdReload, b.Reload},
	}
	for _, g := range groups {
		if len(g.names) == 0 {
			continue
		}
		for k, c := range km.commands {
			if c == g.cmd {
				delete(km.commands, k)
			}
		}
	}
	for _, g := range groups {
		for _, name := range g.names {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("%s binding: %w", g.cmd, err)
			}
			if prev, ok := km.commands[k]; ok && prev != g.cmd && km.configured[k] {
				return nil, fmt.Errorf("key %s bound to both %s and %s", k, prev, g.cmd)
			}
			km.commands[k] = g.cmd
			km.configured[k] = true
		}
	}
	return km, nil
}

// Lookup returns the command for an event. Only presses act.
func (km *Keymap) Lookup(ev Event) Command {
	if ev.Kind != Press {
		return CmdNone
	}
	if ev.Key == KeyFileChanged {
		return CmdReload
	}
	return km.commands[ev.Key]
}

// Keys returns the keys bound to any command, for sources that must
// register each key individually.
func (km *Keymap) Keys() []Key {
	var out []Key
	for _, k := range AllKeys() {
		if _, ok := km.commands[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// KeysFor returns the keys bound to cmd.
func (km *Keymap) KeysFor(cmd Command) []Key {
	var out []Key
	for _, k := range AllKeys() {
		if km.commands[k] == cmd {
			out = append(out, k)
		}
	}
	return out
}

// GlobalKeys returns the keys a system-wide hook should grab. A global grab
// takes the key away from every other application, so keys used for typing
// are only included when the user bound them explicitly.
func (km *Keymap) GlobalKeys() []Key {
	var out []Key
	for _, k := range km.Keys() {
		if k.Typing() && !km.configured[k] {
			continue
		}
		out = append(out, k)
	}
	return out
}

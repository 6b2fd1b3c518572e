package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()
	tests := []struct {
		ev   Event
		want Command
	}{
		{Pressed(KeyRight), CmdNext},
		{Pressed(KeyDown), CmdNext},
		{Pressed(KeyLeft), CmdPrev},
		{Pressed(KeyUp), CmdPrev},
		{Pressed(KeyEscape), CmdQuit},
		{Pressed(KeyQ), CmdQuit},
		{Pressed(KeyR), CmdReload},
		{Pressed(KeySpace), CmdNone},
		{Event{Key: KeyRight, Kind: Release}, CmdNone},
		{Event{Key: KeyEscape, Kind: Other}, CmdNone},
		{Pressed(KeyFileChanged), CmdReload},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, km.Lookup(tt.ev), tt.ev.String())
	}
}

func TestNewKeymapReplacesOnlyConfiguredCommands(t *testing.T) {
	km, err := NewKeymap(Bindings{Next: []string{"j", "space"}, Prev: []string{"K"}})
	require.NoError(t, err)

	assert.Equal(t, CmdNext, km.Lookup(Pressed(KeyJ)))
	assert.Equal(t, CmdNext, km.Lookup(Pressed(KeySpace)))
	assert.Equal(t, CmdNone, km.Lookup(Pressed(KeyRight)))
	assert.Equal(t, CmdPrev, km.Lookup(Pressed(KeyK)))
	assert.Equal(t, CmdNone, km.Lookup(Pressed(KeyLeft)))
	assert.Equal(t, CmdQuit, km.Lookup(Pressed(KeyEscape)))
}

func TestNewKeymapRejectsUnknownAndConflictingKeys(t *testing.T) {
	_, err := NewKeymap(Bindings{Next: []string{"F13"}})
	assert.ErrorContains(t, err, "unknown key")

	_, err = NewKeymap(Bindings{Next: []string{"Right"}, Prev: []string{"right"}})
	assert.ErrorContains(t, err, "bound to both")

	_, err = NewKeymap(Bindings{Next: []string{"FileChanged"}})
	assert.Error(t, err)
}

func TestParseKeyAliases(t *testing.T) {
	for name, want := range map[string]Key{
		"esc":        KeyEscape,
		"ArrowRight": KeyRight,
		" q ":        KeyQ,
		"Return":     KeyEnter,
	} {
		got, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestKeysListsBoundKeysInOrder(t *testing.T) {
	km := DefaultKeymap()
	assert.Equal(t, []Key{KeyRight, KeyLeft, KeyUp, KeyDown, KeyEscape, KeyQ, KeyR}, km.Keys())
	assert.Equal(t, []Key{KeyEscape, KeyQ}, km.KeysFor(CmdQuit))
}

func TestNewKeymapTakesKeyFromUnconfiguredCommand(t *testing.T) {
	km, err := NewKeymap(Bindings{Quit: []string{"R"}})
	require.NoError(t, err)

	assert.Equal(t, CmdQuit, km.Lookup(Pressed(KeyR)))
	assert.Equal(t, CmdNone, km.Lookup(Pressed(KeyQ)))
	assert.Empty(t, km.KeysFor(CmdReload))
	assert.Equal(t, CmdReload, km.Lookup(FileChanged("/tmp/a")))
}

func TestGlobalKeysSkipDefaultTypingKeys(t *testing.T) {
	assert.Equal(t, []Key{KeyRight, KeyLeft, KeyUp, KeyDown, KeyEscape}, DefaultKeymap().GlobalKeys())

	km, err := NewKeymap(Bindings{Next: []string{"Right", "Space"}, Quit: []string{"Esc", "q"}})
	require.NoError(t, err)
	assert.Equal(t, []Key{KeyRight, KeyLeft, KeyUp, KeyDown, KeyEscape, KeySpace, KeyQ}, km.GlobalKeys())
}

// Package status draws the one-screen summary shown while keys are read from
// the terminal.
package status

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/kk-code-lab/qpreview/internal/textutil"
)

// Theme holds the status screen colors.
type Theme struct {
	Title tcell.Style
	Path  tcell.Style
	Hint  tcell.Style
	Error tcell.Style
}

// DefaultTheme returns the default colors.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Title: base.Foreground(tcell.Color33).Bold(true),
		Path:  base,
		Hint:  base.Foreground(tcell.ColorLightSlateGray),
		Error: base.Foreground(tcell.ColorRed),
	}
}

// View is what the screen shows.
type View struct {
	Index      int
	Total      int
	Path       string
	Fullscreen bool
	Err        error
	Hint       string
}

type row struct {
	text  string
	style tcell.Style
}

// Line renders a View onto a tcell screen. Methods are safe to call from
// multiple goroutines.
type Line struct {
	screen tcell.Screen
	theme  Theme

	mu   sync.Mutex
	view View
}

// New creates a status renderer on screen.
func New(screen tcell.Screen) *Line {
	return &Line{screen: screen, theme: DefaultTheme()}
}

// Update replaces the view and redraws.
func (l *Line) Update(v View) {
	l.mu.Lock()
	l.view = v
	l.mu.Unlock()
	l.Redraw()
}

// Redraw draws the current view again, e.g. after a resize.
func (l *Line) Redraw() {
	l.mu.Lock()
	v := l.view
	l.mu.Unlock()

	w, h := l.screen.Size()
	l.screen.Clear()
	if w <= 0 || h <= 0 {
		return
	}

	rows := []row{
		{FormatTitle(v), l.theme.Title},
		{DisplayPath(v.Path), l.theme.Path},
	}
	if v.Err != nil {
		rows = append(rows, row{"error: " + textutil.SanitizeTerminalText(v.Err.Error()), l.theme.Error})
	}
	rows = append(rows, row{v.Hint, l.theme.Hint})

	for y, r := range rows {
		if y >= h {
			break
		}
		drawText(l.screen, 0, y, w, r.text, r.style)
	}
	l.screen.Show()
}

// FormatTitle renders "[2/5] name.png".
func FormatTitle(v View) string {
	if v.Total == 0 {
		return "qpreview"
	}
	title := fmt.Sprintf("[%d/%d] %s", v.Index+1, v.Total, DisplayName(v.Path))
	if v.Fullscreen {
		title += " (fullscreen)"
	}
	return title
}

// DisplayName returns the sanitized, NFC-normalised base name of path.
func DisplayName(path string) string {
	if path == "" {
		return ""
	}
	return DisplayPath(filepath.Base(path))
}

// DisplayPath makes a path safe to print on a terminal. Names read from
// macOS file systems are often decomposed (NFD), which misaligns columns.
func DisplayPath(path string) string {
	return textutil.SanitizeTerminalText(norm.NFC.String(path))
}

func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	text = textutil.Truncate(strings.TrimRight(text, "\n"), maxWidth)
	col := x
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw <= 0 {
			continue
		}
		screen.SetContent(col, y, r, nil, style)
		col += rw
	}
}

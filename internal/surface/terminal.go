package surface

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Surface on top of a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal creates a terminal surface. Init must be called before use.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen. Used by tests with a
// tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the underlying screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the screen dimensions.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// SetLine writes text into the given row, blanking the remainder.
func (t *Terminal) SetLine(row int, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if row < 0 || row >= height {
		return
	}

	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		t.screen.SetContent(x, row, r, nil, tcell.StyleDefault)
		x++
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
}

// Clear erases the screen.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

// Show flushes pending updates to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

// PollEvent blocks until the next terminal event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

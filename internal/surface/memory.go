package surface

import (
	"strings"
	"sync"
)

// MemorySurface is an in-memory Surface backed by a slice of lines.
// It is safe for concurrent use.
type MemorySurface struct {
	mu     sync.Mutex
	width  int
	height int
	lines  []string
}

// NewMemorySurface creates a MemorySurface with the given dimensions.
func NewMemorySurface(width, height int) *MemorySurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &MemorySurface{
		width:  width,
		height: height,
		lines:  make([]string, height),
	}
}

// Size returns the surface dimensions.
func (s *MemorySurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetLine replaces the text of the given row.
func (s *MemorySurface) SetLine(row int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row < 0 || row >= s.height {
		return
	}
	if len(text) > s.width {
		text = text[:s.width]
	}
	s.lines[row] = text
}

// Clear erases all content.
func (s *MemorySurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		s.lines[i] = ""
	}
}

// Lines returns a copy of the surface content.
func (s *MemorySurface) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns the text of a single row, or "" if out of range.
func (s *MemorySurface) Line(row int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row < 0 || row >= len(s.lines) {
		return ""
	}
	return s.lines[row]
}

// String renders the surface as newline-joined text, trailing blank lines
// trimmed. Useful in tests and for the stdout demo host.
func (s *MemorySurface) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := len(s.lines)
	for end > 0 && s.lines[end-1] == "" {
		end--
	}
	return strings.Join(s.lines[:end], "\n")
}

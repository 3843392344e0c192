// Package surface defines the drawable target handed to a plugin's render
// capability. The host core treats surfaces as opaque; implementations here
// cover tests (MemorySurface) and the demo terminal host (Terminal).
package surface

// Surface is a line-oriented drawable region. Plugins write whole lines;
// layout within a line is the plugin's business.
type Surface interface {
	// Size returns the surface dimensions in character cells.
	Size() (width, height int)

	// SetLine replaces the text of the given row (0-based). Rows outside
	// the surface are ignored; text longer than the width is truncated.
	SetLine(row int, text string)

	// Clear erases all content.
	Clear()
}

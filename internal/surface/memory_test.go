package surface

import "testing"

func TestMemorySurfaceSetLine(t *testing.T) {
	s := NewMemorySurface(10, 3)

	s.SetLine(0, "hello")
	s.SetLine(2, "world")

	if got := s.Line(0); got != "hello" {
		t.Errorf("Line(0) = %q, want %q", got, "hello")
	}
	if got := s.Line(1); got != "" {
		t.Errorf("Line(1) = %q, want empty", got)
	}
	if got := s.Line(2); got != "world" {
		t.Errorf("Line(2) = %q, want %q", got, "world")
	}
}

func TestMemorySurfaceTruncation(t *testing.T) {
	s := NewMemorySurface(4, 1)

	s.SetLine(0, "toolong")

	if got := s.Line(0); got != "tool" {
		t.Errorf("Line(0) = %q, want %q", got, "tool")
	}
}

func TestMemorySurfaceOutOfRange(t *testing.T) {
	s := NewMemorySurface(10, 2)

	// Must not panic.
	s.SetLine(-1, "x")
	s.SetLine(2, "x")

	if got := s.Line(-1); got != "" {
		t.Errorf("Line(-1) = %q, want empty", got)
	}
}

func TestMemorySurfaceClear(t *testing.T) {
	s := NewMemorySurface(10, 2)
	s.SetLine(0, "a")
	s.SetLine(1, "b")

	s.Clear()

	for i := 0; i < 2; i++ {
		if got := s.Line(i); got != "" {
			t.Errorf("Line(%d) = %q after Clear, want empty", i, got)
		}
	}
}

func TestMemorySurfaceString(t *testing.T) {
	s := NewMemorySurface(20, 4)
	s.SetLine(0, "first")
	s.SetLine(1, "second")

	want := "first\nsecond"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMemorySurfaceLinesIsCopy(t *testing.T) {
	s := NewMemorySurface(10, 2)
	s.SetLine(0, "orig")

	lines := s.Lines()
	lines[0] = "mutated"

	if got := s.Line(0); got != "orig" {
		t.Errorf("Line(0) = %q after mutating Lines() copy, want %q", got, "orig")
	}
}

package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, Cell{Rune: 'X', Color: ColorRed})
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenFillRectClips(t *testing.T) {
	s := NewScreen(10, 5)
	s.FillRect(NewRect(8, 3, 5, 5), '#', ColorGreen)

	for y := 3; y < 5; y++ {
		for x := 8; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorGreen {
				t.Errorf("FillRect: expected green '#' at (%d, %d), got %+v", x, y, c)
			}
		}
	}
	if s.Get(7, 3) != ' ' {
		t.Error("FillRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if !strings.HasPrefix(s.Row(1)[2:], "Hello") {
		t.Errorf("Row(1) = %q", s.Row(1))
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	s.DrawTextCentered(3, "Hi")
	if s.Get(9, 3) != 'H' || s.Get(10, 3) != 'i' {
		t.Error("DrawTextCentered failed")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "        " {
		t.Errorf("Resize should clear content, row 0 = %q", s.Row(0))
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Press(ActionRight)
	f.Release(ActionLeft)
	if !f.Has(ActionRight) || f.Has(ActionLeft) {
		t.Error("Has should only report pressed actions")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}

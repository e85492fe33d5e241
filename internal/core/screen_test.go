package core

import (
	"strings"
	"testing"
)

func TestScreenSetAndGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, 'X')
	cell := s.GetCell(3, 2)
	if cell.Rune != 'X' {
		t.Errorf("GetCell(3, 2).Rune = %q, expected 'X'", cell.Rune)
	}
	if cell.Color != ColorDefault {
		t.Errorf("GetCell(3, 2).Color = %v, expected ColorDefault", cell.Color)
	}

	s.SetColored(1, 1, 'O', ColorRed)
	cell = s.GetCell(1, 1)
	if cell.Rune != 'O' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected 'O' in red", cell)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)

	// Should not panic
	s.Set(-1, 0, 'X')
	s.Set(0, -1, 'X')
	s.Set(10, 0, 'X')
	s.Set(0, 5, 'X')

	cell := s.GetCell(-1, -1)
	if cell.Rune != ' ' {
		t.Errorf("Out-of-bounds GetCell should return blank, got %q", cell.Rune)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.FillRect(0, 0, 4, 3, '#', ColorGray)
	s.Clear()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if s.GetCell(x, y).Rune != ' ' {
				t.Fatalf("cell (%d, %d) not cleared", x, y)
			}
		}
	}
}

func TestScreenFillRectClipped(t *testing.T) {
	s := NewScreen(5, 5)
	s.FillRect(3, 3, 10, 10, '#', ColorGray)

	if s.GetCell(4, 4).Rune != '#' {
		t.Error("FillRect should fill in-bounds cells")
	}
	if s.GetCell(2, 2).Rune != ' ' {
		t.Error("FillRect should not touch cells outside the rect")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(2, 1, 'A')

	s.Resize(8, 6)
	if s.Width() != 8 || s.Height() != 6 {
		t.Fatalf("Resize dimensions = %dx%d, expected 8x6", s.Width(), s.Height())
	}
	if s.GetCell(2, 1).Rune != 'A' {
		t.Error("Resize should preserve existing content")
	}

	s.Resize(3, 2)
	if s.GetCell(2, 1).Rune != 'A' {
		t.Error("Shrinking resize should keep content inside new bounds")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "hi")

	if s.GetCell(2, 1).Rune != 'h' || s.GetCell(3, 1).Rune != 'i' {
		t.Error("DrawText did not place runes at expected cells")
	}

	out := s.String()
	if !strings.Contains(out, "hi") {
		t.Errorf("String() output missing drawn text:\n%s", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("String() should have height-1 newlines, got %d", strings.Count(out, "\n"))
	}
}

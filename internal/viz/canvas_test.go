package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.DotsWide() != 8 || c.DotsHigh() != 8 {
		t.Fatalf("expected 8x8 dots, got %dx%d", c.DotsWide(), c.DotsHigh())
	}

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected first braille dot, got %U", c.Grid[0][0])
	}
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("expected dots 1 and 8, got %U", c.Grid[0][0])
	}

	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)
	for _, row := range c.Grid[1:] {
		for _, r := range row {
			if r != 0x2800 {
				t.Errorf("out of range dots should be ignored, got %U", r)
			}
		}
	}

	c.Clear()
	if c.Lit(0, 0) {
		t.Error("clear should reset every dot")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for _, p := range [][2]int{{0, 0}, {3, 3}, {7, 7}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("expected dot %v on the diagonal", p)
		}
	}
	if c.Lit(7, 0) {
		t.Error("dot off the line should be dark")
	}
}

func TestCanvasCircles(t *testing.T) {
	c := NewCanvas(5, 3)
	c.FillCircle(4, 4, 2)
	if !c.Lit(4, 4) || !c.Lit(4, 2) || !c.Lit(6, 4) {
		t.Error("filled circle should cover its center and axis points")
	}
	if c.Lit(6, 6) {
		t.Error("corner outside the radius should stay dark")
	}

	c.Clear()
	c.DrawCircle(4, 4, 3)
	if !c.Lit(7, 4) || !c.Lit(4, 1) || !c.Lit(1, 4) || !c.Lit(4, 7) {
		t.Error("outline should pass through the axis points")
	}
	if c.Lit(4, 4) {
		t.Error("outline should leave the center dark")
	}

	c.Clear()
	c.FillCircle(3, 3, 0)
	if !c.Lit(3, 3) {
		t.Error("zero radius should still light the center")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if l != "⠀⠀⠀" {
			t.Errorf("expected blank braille row, got %q", l)
		}
	}
}

func TestStrainProfile(t *testing.T) {
	st := newStyles(ThemeMinimal)

	if got := st.StrainProfile(nil, 4, 0.5); got != "────" {
		t.Errorf("empty profile should be a rule, got %q", got)
	}

	got := st.StrainProfile([]float64{-0.2, 0.5, 1}, 3, 0.5)
	if !strings.Contains(got, "▁") || strings.Count(got, "█") != 2 {
		t.Errorf("expected one slack and two full cells, got %q", got)
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("expected %d names, got %v", len(Themes), names)
	}
	th := Themes[0]
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != Themes[0].Name {
		t.Errorf("cycling every theme should wrap around, got %s", th.Name)
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	if GetTheme("retro").Name != "retro" {
		t.Error("expected retro theme")
	}
}

package plane

import (
	"sync"
	"testing"

	"github.com/lixenwraith/planefade/terminal"
)

func TestNewPlane(t *testing.T) {
	p := New(3, 4)
	rows, cols := p.Dim()
	if rows != 3 || cols != 4 {
		t.Fatalf("Dim() = %dx%d, want 3x4", rows, cols)
	}
	ch := p.Channels(1, 1)
	if !ch.FgDefault || !ch.BgDefault {
		t.Errorf("fresh cell channels = %+v, want both default", ch)
	}
	if b := p.Base(); b.Rune != ' ' || !b.FgDefault || !b.BgDefault {
		t.Errorf("base = %+v, want blank default", b)
	}

	neg := New(-1, 5)
	if r, c := neg.Dim(); r != 0 || c != 5 {
		t.Errorf("New(-1,5).Dim() = %dx%d", r, c)
	}
}

func TestSettersKeepDefaultFlags(t *testing.T) {
	p := New(1, 1)
	p.Put(0, 0, 'x', FgOnly(terminal.RGB{R: 10}))

	p.SetFg(0, 0, terminal.RGB{R: 99})
	p.SetBg(0, 0, terminal.RGB{B: 7})

	ch := p.Channels(0, 0)
	if ch.Fg != (terminal.RGB{R: 99}) || ch.FgDefault {
		t.Errorf("fg = %+v default=%v", ch.Fg, ch.FgDefault)
	}
	if ch.Bg != (terminal.RGB{B: 7}) || !ch.BgDefault {
		t.Errorf("bg write changed default flag: %+v", ch)
	}
}

func TestOutOfBounds(t *testing.T) {
	p := New(2, 2)
	if p.Put(2, 0, 'x', DefaultChannels) {
		t.Error("Put outside grid reported success")
	}
	if _, ok := p.Cell(-1, 0); ok {
		t.Error("Cell(-1,0) ok")
	}
	ch := p.Channels(5, 5)
	if !ch.FgDefault || !ch.BgDefault {
		t.Errorf("out-of-bounds channels = %+v, want default", ch)
	}
	// Must not panic
	p.SetFg(9, 9, terminal.RGB{})
	p.SetBg(-1, 0, terminal.RGB{})
}

func TestPutStringClips(t *testing.T) {
	p := New(1, 3)
	n := p.PutString(0, 1, "hello", FgOnly(terminal.RGB{G: 1}))
	if n != 2 {
		t.Fatalf("PutString wrote %d, want 2", n)
	}
	c, _ := p.Cell(0, 2)
	if c.Rune != 'e' {
		t.Errorf("cell(0,2) = %q, want 'e'", c.Rune)
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"Grow", 4, 5},
		{"Shrink", 1, 1},
		{"Wider shorter", 1, 6},
		{"Empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(2, 3)
			for y := 0; y < 2; y++ {
				for x := 0; x < 3; x++ {
					p.Put(y, x, rune('a'+y*3+x), FgOnly(terminal.RGB{R: uint8(y*3 + x)}))
				}
			}

			p.Resize(tt.rows, tt.cols)
			rows, cols := p.Dim()
			if rows != tt.rows || cols != tt.cols {
				t.Fatalf("Dim() = %dx%d", rows, cols)
			}

			for y := 0; y < rows; y++ {
				for x := 0; x < cols; x++ {
					c, _ := p.Cell(y, x)
					if y < 2 && x < 3 {
						if want := rune('a' + y*3 + x); c.Rune != want {
							t.Errorf("(%d,%d) = %q, want %q", y, x, c.Rune, want)
						}
					} else if c.Rune != 0 || !c.FgDefault {
						t.Errorf("(%d,%d) new cell = %+v, want empty default", y, x, c)
					}
				}
			}
		})
	}
}

func TestComposeResolvesBase(t *testing.T) {
	p := New(1, 2)
	p.SetBase(Cell{Rune: '.', Channels: BgOnly(terminal.RGB{B: 50})})
	p.Put(0, 0, 'x', RGBChannels(terminal.RGB{R: 1}, terminal.RGB{G: 2}))

	dst := make([]terminal.Cell, 3*2)
	p.Compose(dst, 3, 2)

	if dst[0].Rune != 'x' || dst[0].Fg != (terminal.RGB{R: 1}) || dst[0].Attrs != terminal.AttrNone {
		t.Errorf("explicit cell = %+v", dst[0])
	}
	// Empty grid cell and off-plane cells use base
	for _, i := range []int{1, 2, 3, 5} {
		if dst[i].Rune != '.' || dst[i].Bg != (terminal.RGB{B: 50}) || dst[i].Attrs != terminal.AttrFgDefault {
			t.Errorf("dst[%d] = %+v, want base", i, dst[i])
		}
	}
}

func TestFill(t *testing.T) {
	p := New(3, 3)
	ch := RGBChannels(terminal.RGB{R: 5}, terminal.RGB{B: 5})
	p.Fill('#', ch)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c, _ := p.Cell(y, x); c.Rune != '#' || c.Channels != ch {
				t.Fatalf("(%d,%d) = %+v", y, x, c)
			}
		}
	}
}

func TestConcurrentResizeAndWrite(t *testing.T) {
	p := New(10, 10)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			p.Resize(5+i%10, 5+i%7)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			rows, cols := p.Dim()
			for y := 0; y < rows; y++ {
				p.SetFg(y, cols-1, terminal.RGB{R: uint8(i)})
			}
		}
	}()
	wg.Wait()
}

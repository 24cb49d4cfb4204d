package status

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("fade.ticks")
	b := r.Ints.Get("fade.ticks")
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	a.Add(3)
	if got := b.Load(); got != 3 {
		t.Errorf("Load() = %d, want 3", got)
	}
	if _, ok := r.Ints.Lookup("missing"); ok {
		t.Error("Lookup created a metric")
	}
}

func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Ints.Get("shared").Load(); got != 1600 {
		t.Errorf("shared = %d, want 1600", got)
	}
	if r.TotalCount() != 1 {
		t.Errorf("TotalCount() = %d, want 1", r.TotalCount())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value not empty")
	}
	s.Store(strings.Repeat("x", MaxStringLen+10))
	if got := len(s.Load()); got != MaxStringLen {
		t.Errorf("len = %d, want %d", got, MaxStringLen)
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := f.Load(); got != 400 {
		t.Errorf("Load() = %v, want 400", got)
	}
}

func TestWriteTo(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b.count").Store(2)
	r.Ints.Get("a.count").Store(1)
	r.Floats.Get("rate").Store(1.5)
	r.Strings.Get("effect").Store("pulse")

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "a.count") > strings.Index(out, "b.count") {
		t.Errorf("keys not sorted:\n%s", out)
	}
	for _, want := range []string{"1.500", "pulse"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

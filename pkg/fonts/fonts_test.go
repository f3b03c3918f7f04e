package fonts

import (
	"sync"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		family string
		want   Kind
	}{
		{"Arial", Sans},
		{"Univers, Arial", Sans},
		{"Courier New", Mono},
		{"'Comic Sans MS'", Script},
		{"Segoe Script", Script},
		{"", Sans},
	}
	for _, tt := range tests {
		if got := KindOf(tt.family); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.family, got, tt.want)
		}
	}
}

func TestCacheSharesFaces(t *testing.T) {
	c := NewCache()
	defer c.Close()
	a, err := c.Face(Key{Kind: Sans, Bold: true, Size: 12})
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	b, err := c.Face(Key{Kind: Sans, Bold: true, Size: 12.001})
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if a != b {
		t.Error("expected sizes within rounding to share a face")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if m := a.Metrics(); m.Height <= 0 {
		t.Errorf("Metrics().Height = %v, want > 0", m.Height)
	}
}

func TestNewFaceAllKinds(t *testing.T) {
	for _, kind := range []Kind{Sans, Mono, Script} {
		for _, bold := range []bool{false, true} {
			for _, italic := range []bool{false, true} {
				f, err := NewFace(Key{Kind: kind, Bold: bold, Italic: italic, Size: 10})
				if err != nil {
					t.Errorf("NewFace(%v bold=%v italic=%v): %v", kind, bold, italic, err)
					continue
				}
				f.Close()
			}
		}
	}
}

func TestNewFaceInvalidSize(t *testing.T) {
	if _, err := NewFace(Key{Size: 0}); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestCacheClose(t *testing.T) {
	c := NewCache()
	if _, err := c.Face(Key{Kind: Mono, Size: 9}); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", c.Len())
	}
}

func TestParseConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := NewFace(Key{Kind: Mono, Size: float64(8 + i%4)})
			if err != nil {
				t.Error(err)
				return
			}
			f.Close()
		}(i)
	}
	wg.Wait()
}

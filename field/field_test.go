package field

import (
	"errors"
	"testing"
)

func TestNewRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d,%d): expected ErrInvalidDimensions, got %v", dims[0], dims[1], err)
		}
	}
}

func TestNewBuffersRejectsOversizedGrid(t *testing.T) {
	if _, err := NewBuffers(100, 100, 1000); !errors.Is(err, ErrGridTooLarge) {
		t.Fatalf("expected ErrGridTooLarge, got %v", err)
	}
	if _, err := NewBuffers(10, 100, 1000); err != nil {
		t.Fatalf("grid at the budget should be accepted: %v", err)
	}
}

func TestBuffersSwap(t *testing.T) {
	b, err := NewBuffers(4, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	front, back := b.Front(), b.Back()
	if front == back {
		t.Fatal("front and back must be distinct")
	}
	back.Set(1, 2, 0.25, 0.75)
	b.Swap()
	if b.Front() != back || b.Back() != front {
		t.Fatal("swap did not exchange buffers")
	}
	if u, v := b.Front().At(1, 2); u != 0.25 || v != 0.75 {
		t.Fatalf("expected written cell after swap, got (%f,%f)", u, v)
	}
	if w, h := b.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %dx%d", w, h)
	}
}

func TestSampleUsesBoundary(t *testing.T) {
	f, err := New(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(2, 1, 0, 0.5)
	f.Set(1, 1, 0, 0.9)
	if _, v := f.Sample(-1, 1, Wrap); v != 0.5 {
		t.Errorf("wrap sample = %f, want 0.5", v)
	}
	if _, v := f.Sample(-1, 1, Reflect); v != 0.9 {
		t.Errorf("reflect sample = %f, want 0.9", v)
	}
	if _, v := f.Sample(3, 1, Clamp); v != 0.5 {
		t.Errorf("clamp sample = %f, want 0.5", v)
	}
}

func TestChannel(t *testing.T) {
	f, _ := New(2, 1)
	f.Set(0, 0, 1, 0.25)
	f.Set(1, 0, 0.5, 0.75)
	v := f.Channel(1, nil)
	if len(v) != 2 || v[0] != 0.25 || v[1] != 0.75 {
		t.Fatalf("Channel(1) = %v", v)
	}
}

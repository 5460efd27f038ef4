package image

import (
	"testing"
	"unsafe"
)

func TestNew_ZeroInitialized(t *testing.T) {
	img := New[float32](4, 4)
	for y := 0; y < 4; y++ {
		for _, p := range img.RowSlice(y) {
			if p != 0 {
				t.Fatalf("New() pixel not zero-initialized: %v", p)
			}
		}
	}
}

func TestImage_StrideAtLeastWidth(t *testing.T) {
	img := New[float32](5, 3)
	if img.Stride() < img.Width() {
		t.Errorf("Stride() = %d, want >= Width() = %d", img.Stride(), img.Width())
	}
}

func TestImage_StrideCacheLineAligned(t *testing.T) {
	img := New[float32](5, 3)
	rowBytes := img.Stride() * int(unsafe.Sizeof(float32(0)))
	if rowBytes%cacheLineBytes != 0 {
		t.Errorf("row byte size %d not a multiple of cache line size %d", rowBytes, cacheLineBytes)
	}
}

func TestImage_RowWidthNotStride(t *testing.T) {
	img := New[float32](5, 3)
	begin, end := img.Row(1)
	if end-begin != img.Width() {
		t.Errorf("Row() span = %d, want Width() = %d", end-begin, img.Width())
	}
}

func TestImage_DisjointRowWrites(t *testing.T) {
	img := New[int](8, 8)
	done := make(chan struct{})
	for y := 0; y < 8; y++ {
		go func(y int) {
			row := img.RowSlice(y)
			for x := range row {
				row[x] = y
			}
			done <- struct{}{}
		}(y)
	}
	for range 8 {
		<-done
	}
	for y := 0; y < 8; y++ {
		for _, v := range img.RowSlice(y) {
			if v != y {
				t.Errorf("row %d contains %d, want %d", y, v, y)
			}
		}
	}
}

func TestImage_AtSet(t *testing.T) {
	img := New[int](3, 3)
	img.Set(1, 2, 42)
	if got := img.At(1, 2); got != 42 {
		t.Errorf("At(1,2) = %d, want 42", got)
	}
}

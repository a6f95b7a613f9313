// Package nd provides lightweight strided views over flat slices.
//
// An Array is a view: it carries shape and stride information but does not
// own the underlying buffer. Sub-arraying produces a new view over the same
// storage.
package nd

import (
	"errors"

	"github.com/cwbudde/algo-nufft/internal/fftypes"
)

// Elem is the set of element types an Array may carry. Besides the
// numeric transform types it admits uint8 for mask planes.
type Elem interface {
	fftypes.Numeric | ~uint8
}

// Sentinel errors reported by view construction.
var (
	ErrShape  = errors.New("nd: shape does not match buffer length")
	ErrBounds = errors.New("nd: index out of bounds")
)

// Array is a strided N-D view over a flat buffer.
// Strides are expressed in elements, not bytes.
type Array[T Elem] struct {
	Data   []T
	Shape  []int
	Stride []int
}

// New allocates a contiguous row-major array of the given shape.
func New[T Elem](shape ...int) Array[T] {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return FromSlice(make([]T, n), shape...)
}

// FromSlice wraps an existing flat buffer in a row-major view.
// It panics with ErrShape if the buffer is too short.
func FromSlice[T Elem](data []T, shape ...int) Array[T] {
	n := 1
	stride := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		stride[d] = n
		n *= shape[d]
	}
	if len(data) < n {
		panic(ErrShape)
	}
	return Array[T]{Data: data, Shape: append([]int(nil), shape...), Stride: stride}
}

// NDim returns the number of dimensions.
func (a Array[T]) NDim() int { return len(a.Shape) }

// Size returns the number of elements addressed by the view.
func (a Array[T]) Size() int {
	n := 1
	for _, s := range a.Shape {
		n *= s
	}
	return n
}

// Offset returns the flat offset of a multi-index.
func (a Array[T]) Offset(idx ...int) int {
	ofs := 0
	for d, i := range idx {
		ofs += i * a.Stride[d]
	}
	return ofs
}

// At returns the element at a multi-index.
func (a Array[T]) At(idx ...int) T { return a.Data[a.Offset(idx...)] }

// Set stores v at a multi-index.
func (a Array[T]) Set(v T, idx ...int) { a.Data[a.Offset(idx...)] = v }

// Sub returns a view of the half-open hyper-rectangle [lo,hi) per axis.
func (a Array[T]) Sub(lo, hi []int) Array[T] {
	if len(lo) != len(a.Shape) || len(hi) != len(a.Shape) {
		panic(ErrBounds)
	}
	ofs := 0
	shape := make([]int, len(a.Shape))
	for d := range a.Shape {
		if lo[d] < 0 || hi[d] > a.Shape[d] || lo[d] > hi[d] {
			panic(ErrBounds)
		}
		ofs += lo[d] * a.Stride[d]
		shape[d] = hi[d] - lo[d]
	}
	return Array[T]{Data: a.Data[ofs:], Shape: shape, Stride: append([]int(nil), a.Stride...)}
}

// SameShape reports whether two views have identical shapes.
func SameShape[T, U Elem](a Array[T], b Array[U]) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for d := range a.Shape {
		if a.Shape[d] != b.Shape[d] {
			return false
		}
	}
	return true
}

// Contiguous reports whether the view addresses a dense row-major block.
func (a Array[T]) Contiguous() bool {
	n := 1
	for d := len(a.Shape) - 1; d >= 0; d-- {
		if a.Shape[d] != 1 && a.Stride[d] != n {
			return false
		}
		n *= a.Shape[d]
	}
	return true
}

// LineCount returns the number of independent 1-D lines along axis.
func (a Array[T]) LineCount(axis int) int {
	n := 1
	for d, s := range a.Shape {
		if d != axis {
			n *= s
		}
	}
	return n
}

// LineOffset returns the flat offset of the line-th 1-D line along axis.
// Lines are enumerated in row-major order of the remaining axes, so the
// enumeration is deterministic and identical for equal shapes.
func (a Array[T]) LineOffset(line, axis int) int {
	ofs := 0
	for d := len(a.Shape) - 1; d >= 0; d-- {
		if d == axis {
			continue
		}
		ofs += (line % a.Shape[d]) * a.Stride[d]
		line /= a.Shape[d]
	}
	return ofs
}

// GatherLine copies the 1-D line starting at base along axis into dst.
func (a Array[T]) GatherLine(dst []T, base, axis int) {
	st := a.Stride[axis]
	for i := range dst {
		dst[i] = a.Data[base+i*st]
	}
}

// ScatterLine copies src into the 1-D line starting at base along axis.
func (a Array[T]) ScatterLine(src []T, base, axis int) {
	st := a.Stride[axis]
	for i, v := range src {
		a.Data[base+i*st] = v
	}
}

// Fill sets every addressed element to v.
func (a Array[T]) Fill(v T) {
	if a.Contiguous() {
		data := a.Data[:a.Size()]
		for i := range data {
			data[i] = v
		}
		return
	}
	n := a.LineCount(0)
	st := a.Stride[0]
	for line := 0; line < n; line++ {
		base := a.LineOffset(line, 0)
		for i := 0; i < a.Shape[0]; i++ {
			a.Data[base+i*st] = v
		}
	}
}

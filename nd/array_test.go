package nd

import "testing"

func TestRowMajorLayout(t *testing.T) {
	t.Parallel()

	a := New[float64](2, 3, 4)
	if a.Size() != 24 {
		t.Fatalf("Size = %d", a.Size())
	}
	if a.Stride[0] != 12 || a.Stride[1] != 4 || a.Stride[2] != 1 {
		t.Fatalf("strides = %v", a.Stride)
	}
	a.Set(7, 1, 2, 3)
	if a.Data[23] != 7 {
		t.Fatal("Set/Offset mismatch")
	}
	if a.At(1, 2, 3) != 7 {
		t.Fatal("At mismatch")
	}
	if !a.Contiguous() {
		t.Fatal("dense array must report contiguous")
	}
}

func TestSubView(t *testing.T) {
	t.Parallel()

	a := New[complex128](4, 5)
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			a.Set(complex(float64(10*i+j), 0), i, j)
		}
	}
	s := a.Sub([]int{1, 2}, []int{3, 4})
	if s.Shape[0] != 2 || s.Shape[1] != 2 {
		t.Fatalf("sub shape = %v", s.Shape)
	}
	if s.At(0, 0) != 12 || s.At(1, 1) != 23 {
		t.Fatalf("sub content wrong: %v %v", s.At(0, 0), s.At(1, 1))
	}
	if s.Contiguous() {
		t.Fatal("strided sub-view must not report contiguous")
	}
	// views share storage
	s.Set(99, 0, 0)
	if a.At(1, 2) != 99 {
		t.Fatal("sub-view write did not reach the parent buffer")
	}
}

func TestLineIteration(t *testing.T) {
	t.Parallel()

	a := New[float64](3, 4)
	for i := range a.Data {
		a.Data[i] = float64(i)
	}
	if a.LineCount(1) != 3 {
		t.Fatalf("LineCount(1) = %d", a.LineCount(1))
	}
	line := make([]float64, 4)
	a.GatherLine(line, a.LineOffset(2, 1), 1)
	want := []float64{8, 9, 10, 11}
	for i := range want {
		if line[i] != want[i] {
			t.Fatalf("line = %v", line)
		}
	}
	// columns
	if a.LineCount(0) != 4 {
		t.Fatalf("LineCount(0) = %d", a.LineCount(0))
	}
	col := make([]float64, 3)
	a.GatherLine(col, a.LineOffset(1, 0), 0)
	if col[0] != 1 || col[1] != 5 || col[2] != 9 {
		t.Fatalf("col = %v", col)
	}
	col[0] = -1
	a.ScatterLine(col, a.LineOffset(1, 0), 0)
	if a.At(0, 1) != -1 {
		t.Fatal("ScatterLine failed")
	}
}

func TestFill(t *testing.T) {
	t.Parallel()

	a := New[float64](3, 3)
	s := a.Sub([]int{0, 1}, []int{3, 2})
	s.Fill(5)
	for i := 0; i < 3; i++ {
		if a.At(i, 1) != 5 || a.At(i, 0) != 0 || a.At(i, 2) != 0 {
			t.Fatal("Fill leaked or missed")
		}
	}
}

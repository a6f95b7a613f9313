// Package cpu reports the CPU capabilities that influence data layout
// choices elsewhere in the library.
package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features describes CPU capabilities relevant to lane-width selection.
type Features struct {
	HasAVX2      bool
	HasAVX512    bool
	HasSSE2      bool
	HasNEON      bool
	Architecture string
}

// DetectFeatures reports the available CPU features for the current process.
func DetectFeatures() Features {
	return Features{
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512F,
		HasSSE2:      cpu.X86.HasSSE2,
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// VectorLen returns the preferred number of float64 lanes for batched
// polynomial evaluation. Lane counts are powers of two; the scalar
// fallback is 1.
func VectorLen(f Features) int {
	switch {
	case f.HasAVX512:
		return 8
	case f.HasAVX2:
		return 4
	case f.HasSSE2, f.HasNEON:
		return 2
	default:
		return 1
	}
}

// VectorLen32 returns the preferred number of float32 lanes.
func VectorLen32(f Features) int {
	v := 2 * VectorLen(f)
	if v > 16 {
		v = 16
	}
	return v
}

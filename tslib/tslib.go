// Package tslib is tinyscript's standard list library, a Go-native
// re-expression of original_source/tinyscript_lib.c's ts_list API: a
// small array of Values, with a capacity fixed when lnew creates it
// (pushes past that capacity fail), reachable from scripts only through
// an opaque integer handle, since a tinyscript Value (spec.md §3) has
// no pointer type to carry a real *ts_list across the script/host
// boundary.
//
// Rather than one malloc'd C struct per list, every list's size,
// capacity, and elements live as a small region of one shared paged
// integer heap (internal/mem.Ints, repurposed here as a bump-allocated
// list heap instead of a simulated VM address space), and the handle a
// script holds is simply that region's base address.
package tslib

import (
	"github.com/totalspectrum/tinyscript"
	"github.com/totalspectrum/tinyscript/internal/mem"
)

// headerWords is the per-list [size, capacity] prefix before element
// storage, mirroring ts_list's size/capacity fields.
const headerWords = 2

// Lib is one list heap. A host embeds one per Interp, matching
// tinyscript's one-Arena-per-Interp instancing (spec.md §9).
type Lib struct {
	heap mem.Ints
	next uint
}

// New creates an empty list library.
func New() *Lib {
	return &Lib{next: 1} // address 0 is reserved as an invalid handle
}

// Register wires the library's builtins into in: lnew, lsize, lfree,
// lget, lset, lpop, lpush, lpush2, lpush3. It returns the first
// registration failure (arena exhaustion registering the builtin
// symbols themselves), if any.
func (lib *Lib) Register(in *tinyscript.Interp) error {
	type def struct {
		name  string
		arity int
		fn    tinyscript.NativeFunc
	}
	defs := []def{
		{"lnew", 1, func(capArg, _, _, _ tinyscript.Value) tinyscript.Value {
			return lib.alloc(capArg)
		}},
		{"lsize", 1, func(h, _, _, _ tinyscript.Value) tinyscript.Value {
			return tinyscript.Value(lib.size(h))
		}},
		{"lfree", 1, func(h, _, _, _ tinyscript.Value) tinyscript.Value {
			// The shared heap never reclaims space (every list is
			// expected to live for the rest of the script's run);
			// lfree exists only for source-level parity with
			// tinyscript_lib.c's API shape.
			return 0
		}},
		{"lget", 2, func(h, idx, _, _ tinyscript.Value) tinyscript.Value {
			n := lib.size(h)
			if idx < 0 || int(idx) >= n {
				return -1
			}
			v, _ := lib.heap.Load(uint(h) + headerWords + uint(idx))
			return tinyscript.Value(v)
		}},
		{"lset", 3, func(h, idx, val, _ tinyscript.Value) tinyscript.Value {
			n := lib.size(h)
			if idx < 0 || int(idx) >= n {
				return 0
			}
			lib.heap.Stor(uint(h)+headerWords+uint(idx), int(val))
			return 1
		}},
		{"lpop", 1, func(h, _, _, _ tinyscript.Value) tinyscript.Value {
			n := lib.size(h)
			if n == 0 {
				return -1
			}
			v, _ := lib.heap.Load(uint(h) + headerWords + uint(n-1))
			lib.setSize(h, n-1)
			return tinyscript.Value(v)
		}},
		{"lpush", 2, func(h, val, _, _ tinyscript.Value) tinyscript.Value {
			return tinyscript.Value(lib.push(h, val))
		}},
		{"lpush2", 3, func(h, v1, v2, _ tinyscript.Value) tinyscript.Value {
			if lib.push(h, v1) == 0 {
				return 0
			}
			return tinyscript.Value(lib.push(h, v2))
		}},
		{"lpush3", 4, func(h, v1, v2, v3 tinyscript.Value) tinyscript.Value {
			if lib.push(h, v1) == 0 {
				return 0
			}
			if lib.push(h, v2) == 0 {
				return 0
			}
			return tinyscript.Value(lib.push(h, v3))
		}},
	}
	for _, d := range defs {
		if _, st := in.DefineBuiltin(d.name, d.arity, d.fn); st != tinyscript.StatusOK {
			return st.Err()
		}
	}
	return nil
}

func (lib *Lib) alloc(capacity tinyscript.Value) tinyscript.Value {
	if capacity < 0 {
		capacity = 0
	}
	base := lib.next
	lib.next += uint(headerWords) + uint(capacity)
	lib.heap.Stor(base, 0, int(capacity))
	return tinyscript.Value(base)
}

func (lib *Lib) size(handle tinyscript.Value) int {
	n, _ := lib.heap.Load(uint(handle))
	return n
}

func (lib *Lib) capacity(handle tinyscript.Value) int {
	n, _ := lib.heap.Load(uint(handle) + 1)
	return n
}

func (lib *Lib) setSize(handle tinyscript.Value, n int) {
	lib.heap.Stor(uint(handle), n)
}

func (lib *Lib) push(h, val tinyscript.Value) int {
	n, capacity := lib.size(h), lib.capacity(h)
	if n >= capacity {
		return 0
	}
	lib.heap.Stor(uint(h)+headerWords+uint(n), int(val))
	lib.setSize(h, n+1)
	return 1
}

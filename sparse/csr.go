// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// CSR is a compressed-sparse-row matrix. It implements mat.Matrix
type CSR struct {
	m, n int
	P    []int     // [m+1] row pointers
	J    []int     // [nnz] column indices (sorted within rows)
	X    []float64 // [nnz] values
}

// NewCSR returns an m×n matrix from raw arrays; no copies are made
func NewCSR(m, n int, p, j []int, x []float64) *CSR {
	if len(p) != m+1 || len(j) != len(x) || p[m] != len(j) {
		chk.Panic("NewCSR: inconsistent arrays: len(p)=%d m=%d len(j)=%d len(x)=%d", len(p), m, len(j), len(x))
	}
	return &CSR{m: m, n: n, P: p, J: j, X: x}
}

// Dims returns the dimensions
func (o *CSR) Dims() (m, n int) { return o.m, o.n }

// Nnz returns the number of stored entries
func (o *CSR) Nnz() int { return len(o.J) }

// At returns the (i, j) entry; zero if not stored
func (o *CSR) At(i, j int) float64 {
	if i < 0 || i >= o.m || j < 0 || j >= o.n {
		panic(mat.ErrIndexOutOfRange)
	}
	cols := o.J[o.P[i]:o.P[i+1]]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return o.X[o.P[i]+k]
	}
	return 0
}

// T returns the transpose (implicit)
func (o *CSR) T() mat.Matrix { return mat.Transpose{Matrix: o} }

// DoRow calls fn for each stored entry of row i
func (o *CSR) DoRow(i int, fn func(j int, x float64)) {
	for k := o.P[i]; k < o.P[i+1]; k++ {
		fn(o.J[k], o.X[k])
	}
}

// Diag returns the diagonal
func (o *CSR) Diag() (d []float64) {
	d = make([]float64, o.m)
	for i := 0; i < o.m; i++ {
		d[i] = o.At(i, i)
	}
	return
}

// MulVec computes y := a * x
func (o *CSR) MulVec(y, x []float64) {
	for i := 0; i < o.m; i++ {
		y[i] = 0
		for k := o.P[i]; k < o.P[i+1]; k++ {
			y[i] += o.X[k] * x[o.J[k]]
		}
	}
}

// Restrict returns the square sub-matrix with the rows and columns listed in keep.
// keep must be sorted in increasing order
func (o *CSR) Restrict(keep []int) *CSR {
	if o.m != o.n {
		chk.Panic("Restrict: matrix must be square. %d×%d is invalid", o.m, o.n)
	}
	old2new := make([]int, o.n)
	for i := range old2new {
		old2new[i] = -1
	}
	for k, i := range keep {
		old2new[i] = k
	}
	nk := len(keep)
	b := &CSR{m: nk, n: nk, P: make([]int, nk+1)}
	for k, i := range keep {
		for p := o.P[i]; p < o.P[i+1]; p++ {
			if c := old2new[o.J[p]]; c >= 0 {
				b.J = append(b.J, c)
				b.X = append(b.X, o.X[p])
			}
		}
		b.P[k+1] = len(b.J)
	}
	return b
}

// Asymmetry returns max |a_ij - a_ji| / max |a_ij|; zero for an empty matrix
func (o *CSR) Asymmetry() float64 {
	var diff, amax float64
	for i := 0; i < o.m; i++ {
		for k := o.P[i]; k < o.P[i+1]; k++ {
			j := o.J[k]
			amax = math.Max(amax, math.Abs(o.X[k]))
			if j < o.m && i < o.n {
				diff = math.Max(diff, math.Abs(o.X[k]-o.At(j, i)))
			}
		}
	}
	if amax == 0 {
		return 0
	}
	return diff / amax
}

// Bandwidth returns max |i - j| over stored entries
func (o *CSR) Bandwidth() (bw int) {
	for i := 0; i < o.m; i++ {
		for k := o.P[i]; k < o.P[i+1]; k++ {
			if d := i - o.J[k]; d > bw {
				bw = d
			} else if -d > bw {
				bw = -d
			}
		}
	}
	return
}

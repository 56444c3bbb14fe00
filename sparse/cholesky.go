// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
)

// ErrNotPosDef is returned when a factorisation meets a non-positive pivot
var ErrNotPosDef = errors.New("matrix is not positive definite")

// PivotTol is the smallest squared pivot accepted, relative to the original diagonal
// entry. Unrestrained rigid body modes leave pivots at round-off level, about 1e-16
// relative; ill-conditioned but supported systems, e.g. slender beams, stay above it
const PivotTol = 1e-11

// Cholesky holds the envelope (profile) Cholesky factor L of a permuted
// symmetric positive-definite matrix: P A Pᵀ = L Lᵀ. Row i of L is stored
// contiguously from its first non-zero column First[i] up to the diagonal
type Cholesky struct {
	N     int       // dimension
	Perm  []int     // Perm[k] = original index of row k
	First []int     // [n] first column of the envelope of each row
	Off   []int     // [n+1] offsets of rows into Val
	Val   []float64 // envelope entries of L
}

// Fact computes the factorisation of a using the given permutation (nil means identity).
// Only the lower triangle (after permutation) of a is read
func (o *Cholesky) Fact(a *CSR, perm []int) (err error) {

	// permutation
	n, _ := a.Dims()
	o.N = n
	if perm == nil {
		perm = make([]int, n)
		for i := range perm {
			perm[i] = i
		}
	}
	if len(perm) != n {
		return chk.Err("Cholesky: permutation has size %d but matrix has %d rows", len(perm), n)
	}
	o.Perm = perm
	inv := Inverse(perm)

	// envelope
	o.First = make([]int, n)
	o.Off = make([]int, n+1)
	for k := 0; k < n; k++ {
		o.First[k] = k
		a.DoRow(perm[k], func(j int, x float64) {
			if c := inv[j]; c < o.First[k] {
				o.First[k] = c
			}
		})
		o.Off[k+1] = o.Off[k] + k - o.First[k] + 1
	}

	// scatter a into envelope
	o.Val = make([]float64, o.Off[n])
	diag := make([]float64, n)
	for k := 0; k < n; k++ {
		a.DoRow(perm[k], func(j int, x float64) {
			if c := inv[j]; c <= k {
				o.Val[o.Off[k]+c-o.First[k]] += x
				if c == k {
					diag[k] = x
				}
			}
		})
	}

	// factorise row by row
	for i := 0; i < n; i++ {
		fi := o.First[i]
		Li := o.Val[o.Off[i] : o.Off[i+1]]
		for j := fi; j <= i; j++ {
			s := Li[j-fi]
			fj := o.First[j]
			Lj := o.Val[o.Off[j]:o.Off[j+1]]
			k0 := fi
			if fj > k0 {
				k0 = fj
			}
			for k := k0; k < j; k++ {
				s -= Li[k-fi] * Lj[k-fj]
			}
			if j < i {
				Li[j-fi] = s / Lj[j-fj]
				continue
			}
			if diag[i] <= 0 || s <= PivotTol*diag[i] || math.IsNaN(s) {
				return chk.Err("pivot %d (original row %d) is %g with diagonal %g: %w", i, perm[i], s, diag[i], ErrNotPosDef)
			}
			Li[i-fi] = math.Sqrt(s)
		}
	}
	return
}

// Solve solves a x = b using the factorisation; x and b may not alias
func (o *Cholesky) Solve(x, b []float64) (err error) {
	n := o.N
	if len(x) != n || len(b) != n {
		return chk.Err("Cholesky: solve with len(x)=%d and len(b)=%d but n=%d", len(x), len(b), n)
	}

	// y := P b
	y := make([]float64, n)
	for k := 0; k < n; k++ {
		y[k] = b[o.Perm[k]]
	}

	// forward: L y = P b
	for i := 0; i < n; i++ {
		fi := o.First[i]
		Li := o.Val[o.Off[i]:o.Off[i+1]]
		s := y[i]
		for k := fi; k < i; k++ {
			s -= Li[k-fi] * y[k]
		}
		y[i] = s / Li[i-fi]
	}

	// backward: Lᵀ z = y (column sweep over rows of L)
	for i := n - 1; i >= 0; i-- {
		fi := o.First[i]
		Li := o.Val[o.Off[i]:o.Off[i+1]]
		y[i] /= Li[i-fi]
		for k := fi; k < i; k++ {
			y[k] -= Li[k-fi] * y[i]
		}
	}

	// x := Pᵀ z
	for k := 0; k < n; k++ {
		x[o.Perm[k]] = y[k]
	}
	return
}

// Profile returns the number of stored entries of L
func (o *Cholesky) Profile() int { return len(o.Val) }

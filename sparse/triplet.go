// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparse implements sparse storage and direct solvers for symmetric
// positive-definite systems arising from finite element assembly
package sparse

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Triplet holds the (i, j, x) entries of a sparse matrix under assembly.
// Repeated (i, j) pairs are summed when converting to CSR
type Triplet struct {
	m, n int       // dimensions
	pos  int       // current position
	i    []int     // row indices
	j    []int     // column indices
	x    []float64 // values
}

// Init allocates space for max entries of an m×n matrix
func (o *Triplet) Init(m, n, max int) {
	o.m, o.n, o.pos = m, n, 0
	o.i = make([]int, max)
	o.j = make([]int, max)
	o.x = make([]float64, max)
}

// Start resets the position counter; i.e. restarts assembly
func (o *Triplet) Start() {
	o.pos = 0
}

// Put adds an entry; the storage grows if max was underestimated
func (o *Triplet) Put(i, j int, x float64) {
	if i < 0 || i >= o.m || j < 0 || j >= o.n {
		chk.Panic("Triplet.Put: (%d,%d) is outside %d×%d matrix", i, j, o.m, o.n)
	}
	if o.pos >= len(o.i) {
		o.i = append(o.i, i)
		o.j = append(o.j, j)
		o.x = append(o.x, x)
		o.pos++
		return
	}
	o.i[o.pos], o.j[o.pos], o.x[o.pos] = i, j, x
	o.pos++
}

// Len returns the number of entries put so far
func (o *Triplet) Len() int { return o.pos }

// Dims returns the dimensions
func (o *Triplet) Dims() (m, n int) { return o.m, o.n }

// ToCSR converts the triplet into compressed-sparse-row format, summing duplicates.
// Column indices are sorted within each row
func (o *Triplet) ToCSR() *CSR {

	// count entries per row
	count := make([]int, o.m+1)
	for k := 0; k < o.pos; k++ {
		count[o.i[k]+1]++
	}
	for r := 0; r < o.m; r++ {
		count[r+1] += count[r]
	}

	// bucket entries by row
	cols := make([]int, o.pos)
	vals := make([]float64, o.pos)
	next := make([]int, o.m)
	copy(next, count[:o.m])
	for k := 0; k < o.pos; k++ {
		r := o.i[k]
		cols[next[r]] = o.j[k]
		vals[next[r]] = o.x[k]
		next[r]++
	}

	// sort each row and merge duplicates
	a := &CSR{m: o.m, n: o.n, P: make([]int, o.m+1)}
	a.J = make([]int, 0, o.pos)
	a.X = make([]float64, 0, o.pos)
	for r := 0; r < o.m; r++ {
		row := rowEntries{cols[count[r]:count[r+1]], vals[count[r]:count[r+1]]}
		sort.Sort(row)
		for k := range row.j {
			last := len(a.J) - 1
			if last >= a.P[r] && a.J[last] == row.j[k] {
				a.X[last] += row.x[k]
				continue
			}
			a.J = append(a.J, row.j[k])
			a.X = append(a.X, row.x[k])
		}
		a.P[r+1] = len(a.J)
	}
	return a
}

// rowEntries sorts column indices together with values
type rowEntries struct {
	j []int
	x []float64
}

func (o rowEntries) Len() int           { return len(o.j) }
func (o rowEntries) Less(a, b int) bool { return o.j[a] < o.j[b] }
func (o rowEntries) Swap(a, b int) {
	o.j[a], o.j[b] = o.j[b], o.j[a]
	o.x[a], o.x[b] = o.x[b], o.x[a]
}

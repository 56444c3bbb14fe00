// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import "sort"

// RCM computes the reverse Cuthill-McKee ordering of the (symmetric) pattern of a.
//  Output:
//   perm -- perm[k] is the original index placed at position k
func RCM(a *CSR) (perm []int) {

	// degrees
	n, _ := a.Dims()
	deg := make([]int, n)
	for i := 0; i < n; i++ {
		for k := a.P[i]; k < a.P[i+1]; k++ {
			if a.J[k] != i {
				deg[i]++
			}
		}
	}

	// visit all connected components
	perm = make([]int, 0, n)
	visited := make([]bool, n)
	nbrs := make([]int, 0, 64)
	for len(perm) < n {

		// start from a pseudo-peripheral node of the next component
		start := -1
		for i := 0; i < n; i++ {
			if !visited[i] && (start < 0 || deg[i] < deg[start]) {
				start = i
			}
		}
		start = peripheral(a, deg, start)

		// breadth-first search with neighbours sorted by degree
		head := len(perm)
		perm = append(perm, start)
		visited[start] = true
		for head < len(perm) {
			i := perm[head]
			head++
			nbrs = nbrs[:0]
			for k := a.P[i]; k < a.P[i+1]; k++ {
				if j := a.J[k]; !visited[j] {
					visited[j] = true
					nbrs = append(nbrs, j)
				}
			}
			sort.Slice(nbrs, func(p, q int) bool {
				if deg[nbrs[p]] == deg[nbrs[q]] {
					return nbrs[p] < nbrs[q]
				}
				return deg[nbrs[p]] < deg[nbrs[q]]
			})
			perm = append(perm, nbrs...)
		}
	}

	// reverse
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		perm[i], perm[j] = perm[j], perm[i]
	}
	return
}

// peripheral moves start towards a pseudo-peripheral node by repeated level
// structures (George-Liu): the last level's min-degree node is taken while the
// eccentricity grows
func peripheral(a *CSR, deg []int, start int) int {
	n, _ := a.Dims()
	level := make([]int, n)
	ecc := -1
	for it := 0; it < 8; it++ {
		for i := range level {
			level[i] = -1
		}
		level[start] = 0
		queue := []int{start}
		last := 0
		for h := 0; h < len(queue); h++ {
			i := queue[h]
			for k := a.P[i]; k < a.P[i+1]; k++ {
				if j := a.J[k]; level[j] < 0 {
					level[j] = level[i] + 1
					last = level[j]
					queue = append(queue, j)
				}
			}
		}
		if last <= ecc {
			break
		}
		ecc = last
		next := start
		for _, i := range queue {
			if level[i] == last && (next == start || deg[i] < deg[next]) {
				next = i
			}
		}
		if next == start {
			break
		}
		start = next
	}
	return start
}

// Inverse returns the inverse permutation; i.e. inv[perm[k]] = k
func Inverse(perm []int) (inv []int) {
	inv = make([]int, len(perm))
	for k, i := range perm {
		inv[i] = k
	}
	return
}

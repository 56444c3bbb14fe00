// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/beamdefl/msolid"
	"github.com/cpmech/beamdefl/shp"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// BRYTOL is the tolerance on the natural-coordinate distance to cell boundaries
// when locating points
const BRYTOL = 1e-9

// Field holds the displacement coefficients of a space.
//  Note: At and AtVert use internal scratchpads; a Field must not be shared among goroutines
type Field struct {
	Sp *Space     // space
	U  []float64  // [neq] coefficients
	sh *shp.Shape // basis of the space
	gs *shp.Shape // affine geometry of cells
	lc *locator   // point locator; built on first call to At
}

// NewField returns a new field
func NewField(sp *Space, U []float64) *Field {
	return &Field{Sp: sp, U: U, sh: sp.NewShape(), gs: shp.Get("tri3")}
}

// At evaluates the displacement at point x
func (o *Field) At(x []float64) (u []float64, err error) {
	if o.lc == nil {
		o.lc = newLocator(o.Sp.Msh)
	}
	msh := o.Sp.Msh
	R := make([]float64, 2)
	for _, cid := range o.lc.candidates(x) {
		err = o.gs.InvMap(R, x, msh.CellCoords(msh.Cells[cid]))
		if err != nil {
			continue
		}
		if o.gs.CellBryDist(R) >= -BRYTOL {
			return o.atR(cid, R), nil
		}
	}
	return nil, errs.New(errs.Geometry, "fem.Field.At", "point (%g, %g) is outside the mesh", x[0], x[1])
}

// AtVert evaluates the displacement at a mesh vertex using the basis of one of its cells
func (o *Field) AtVert(vid int) []float64 {
	c := o.Sp.Msh.Vert2cells[vid][0]
	for l, v := range c.Verts {
		if v == vid {
			R := []float64{o.sh.NatCoords[0][l], o.sh.NatCoords[1][l]}
			return o.atR(c.Id, R)
		}
	}
	return nil // must not reach this point
}

// AtVerts evaluates the displacement at all mesh vertices [nverts][ndim]
func (o *Field) AtVerts() (u [][]float64) {
	u = make([][]float64, len(o.Sp.Msh.Verts))
	for vid := range u {
		u[vid] = o.AtVert(vid)
	}
	return
}

// atR computes u = Σ S_m · u_m in cell cid at natural coordinates R
func (o *Field) atR(cid int, R []float64) (u []float64) {
	o.sh.Func(o.sh.S, o.sh.DSdR, R, false)
	ndim := o.Sp.Ndim
	u = make([]float64, ndim)
	for m, nid := range o.Sp.Cell2node[cid] {
		for i, eq := range o.Sp.Nodes[nid].Eqs {
			if i < ndim {
				u[i] += o.sh.S[m] * o.U[eq]
			}
		}
	}
	return
}

// CellStress computes strains and stresses in cell cid at natural coordinates R
func (o *Field) CellStress(mdl msolid.Model, cid int, R []float64) (ε, σ []float64, err error) {
	err = o.sh.CalcAtR(o.Sp.CellCoords(cid), R, true)
	if err != nil {
		return
	}
	nodes := o.Sp.Cell2node[cid]
	ul := utl.Alloc(len(nodes), o.Sp.Ndim)
	for m, nid := range nodes {
		for i, eq := range o.Sp.Nodes[nid].Eqs {
			ul[m][i] = o.U[eq]
		}
	}
	nsig := 2 * o.Sp.Ndim
	ε, σ = make([]float64, nsig), make([]float64, nsig)
	mdl.Strain(ε, o.sh.G, ul)
	mdl.CalcStress(σ, ε)
	return
}

// MeanDeflection returns the mean vertical displacement of the vertices with x = length
func MeanDeflection(f *Field, msh *inp.Mesh, length float64) (defl float64, err error) {
	tol := inp.Ztol * math.Max(1, math.Abs(length))
	var uy []float64
	for _, v := range msh.Verts {
		if math.Abs(v.C[0]-length) <= tol {
			uy = append(uy, f.AtVert(v.Id)[1])
		}
	}
	if len(uy) == 0 {
		return 0, errs.New(errs.EmptySelection, "fem.MeanDeflection", "no vertex has x = %g; mesh spans [%g, %g]", length, msh.Xmin, msh.Xmax)
	}
	return floats.Sum(uy) / float64(len(uy)), nil
}

// DeflectionLine evaluates the vertical displacement at npts equally spaced points
// of the horizontal line y = yc between the extreme x-coordinates of the mesh
func DeflectionLine(f *Field, yc float64, npts int) (x, uy []float64, err error) {
	op := "fem.DeflectionLine"
	if npts < 2 {
		return nil, nil, errs.New(errs.Config, op, "at least 2 points are required; %d is invalid", npts)
	}
	msh := f.Sp.Msh
	x = utl.LinSpace(msh.Xmin, msh.Xmax, npts)
	uy = make([]float64, npts)
	for i, xi := range x {
		u, e := f.At([]float64{xi, yc})
		if e != nil {
			return nil, nil, errs.Wrap(errs.Geometry, op, e)
		}
		uy[i] = u[1]
	}
	return
}

// locator finds the cells that may contain a point using a kd-tree of cell centroids
type locator struct {
	tree *kdtree.Tree // centroids
	r2   float64      // squared search radius: largest centroid-to-vertex distance
}

// newLocator builds the kd-tree of centroids
func newLocator(msh *inp.Mesh) (o *locator) {
	o = new(locator)
	pts := make(centroids, len(msh.Cells))
	for i, c := range msh.Cells {
		pts[i].cid = c.Id
		for _, v := range c.Verts {
			pts[i].x[0] += msh.Verts[v].C[0] / float64(len(c.Verts))
			pts[i].x[1] += msh.Verts[v].C[1] / float64(len(c.Verts))
		}
		for _, v := range c.Verts {
			o.r2 = math.Max(o.r2, pts[i].Distance(centroid{x: [2]float64{msh.Verts[v].C[0], msh.Verts[v].C[1]}}))
		}
	}
	o.r2 *= (1 + 1e-6) * (1 + 1e-6)
	o.tree = kdtree.New(pts, false)
	return
}

// candidates returns the cells whose centroids are within the search radius of x,
// nearest first
func (o *locator) candidates(x []float64) (cids []int) {
	keep := kdtree.NewDistKeeper(o.r2)
	o.tree.NearestSet(keep, centroid{x: [2]float64{x[0], x[1]}, cid: -1})
	for _, c := range keep.Heap {
		cids = append(cids, c.Comparable.(centroid).cid)
	}
	return
}

// centroid is a cell centroid stored in the kd-tree
type centroid struct {
	x   [2]float64
	cid int
}

func (p centroid) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.x[d] - c.(centroid).x[d]
}

func (p centroid) Dims() int { return 2 }

func (p centroid) Distance(c kdtree.Comparable) float64 {
	q := c.(centroid)
	dx, dy := p.x[0]-q.x[0], p.x[1]-q.x[1]
	return dx*dx + dy*dy
}

// centroids implements kdtree.Interface
type centroids []centroid

func (p centroids) Index(i int) kdtree.Comparable         { return p[i] }
func (p centroids) Len() int                              { return len(p) }
func (p centroids) Pivot(d kdtree.Dim) int                { return plane{centroids: p, Dim: d}.Pivot() }
func (p centroids) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts centroids along one dimension
type plane struct {
	kdtree.Dim
	centroids
}

func (p plane) Less(i, j int) bool { return p.centroids[i].x[p.Dim] < p.centroids[j].x[p.Dim] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.centroids = p.centroids[start:end]
	return p
}
func (p plane) Swap(i, j int) { p.centroids[i], p.centroids[j] = p.centroids[j], p.centroids[i] }

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/gosl/io"
)

// MeshGenerator converts a geometry into a triangular mesh whose boundary facets
// carry the tags of the geometry edges they lie on
type MeshGenerator interface {
	Generate(geo *Geometry, maxh float64) (*Mesh, error)
}

// MaxCells is the largest number of cells a generator may produce
const MaxCells = 4000000

// StructGen generates structured meshes of convex quadrilaterals. The domain is
// split into n×m bilinear cells, each one divided into two triangles, such that
// no triangle edge is longer than maxh
type StructGen struct {
	Verbose bool // show messages
}

// FileGen reads a mesh from a JSON file and checks it against the geometry.
// maxh is ignored
type FileGen struct {
	Dir string // directory of mesh file
	Fn  string // filename; e.g. "beam.msh"
}

// interfaces
var (
	_ MeshGenerator = (*StructGen)(nil)
	_ MeshGenerator = (*FileGen)(nil)
)

// Generate generates the mesh
func (o *StructGen) Generate(geo *Geometry, maxh float64) (msh *Mesh, err error) {

	// check input
	op := "inp.StructGen"
	if geo == nil {
		return nil, errs.New(errs.MeshGeneration, op, "geometry is missing")
	}
	if !(maxh > 0) || math.IsInf(maxh, 0) {
		return nil, errs.New(errs.MeshGeneration, op, "maximum element size must be positive; maxh = %g is invalid", maxh)
	}
	if geo.Nverts() != 4 {
		return nil, errs.New(errs.MeshGeneration, op, "structured meshes require quadrilateral domains; %d vertices is invalid", geo.Nverts())
	}
	for k := 0; k < 4; k++ {
		if cross(geo.P[k], geo.P[(k+1)%4], geo.P[(k+2)%4]) <= 0 {
			return nil, errs.New(errs.MeshGeneration, op, "quadrilateral must be convex; angle at vertex %d is invalid", (k+1)%4)
		}
	}

	// divisions: quadrilaterals are split along a diagonal, so the spacing along
	// each direction starts at maxh/√2 and is refined until every edge fits maxh.
	// counts stay in float64 until they are known to be within MaxCells
	lx := math.Max(geo.EdgeLen(0), geo.EdgeLen(2))
	ly := math.Max(geo.EdgeLen(1), geo.EdgeLen(3))
	h := maxh / math.Sqrt2
	nf := math.Max(1, math.Ceil(lx/h-Ztol))
	mf := math.Max(1, math.Ceil(ly/h-Ztol))
	for {
		if !(2*nf*mf <= MaxCells) {
			return nil, errs.New(errs.MeshGeneration, op, "maxh = %g yields %g cells which exceeds the limit %d", maxh, 2*nf*mf, MaxCells)
		}
		n, m := int(nf), int(mf)
		msh, err = structured(geo, n, m)
		if err != nil {
			return nil, errs.Wrap(errs.MeshGeneration, op, err)
		}
		emax := msh.MaxEdge()
		if emax <= maxh*(1+Ztol) {
			if o.Verbose {
				io.Pf("mesh: %d×%d divisions, %d vertices, %d cells, max edge = %g\n", n, m, len(msh.Verts), len(msh.Cells), emax)
			}
			return
		}
		s := emax / maxh
		nf, mf = math.Ceil(nf*s), math.Ceil(mf*s)
	}
}

// structured builds and initialises the n×m mesh of a convex quadrilateral
func structured(geo *Geometry, n, m int) (msh *Mesh, err error) {

	// vertices
	msh = new(Mesh)
	P0, P1, P2, P3 := geo.P[0], geo.P[1], geo.P[2], geo.P[3]
	vid := func(i, j int) int { return i + j*(n+1) }
	for j := 0; j <= m; j++ {
		η := float64(j) / float64(m)
		for i := 0; i <= n; i++ {
			ξ := float64(i) / float64(n)
			x := make([]float64, 2)
			for d := 0; d < 2; d++ {
				x[d] = (1-ξ)*(1-η)*P0[d] + ξ*(1-η)*P1[d] + ξ*η*P2[d] + (1-ξ)*η*P3[d]
			}
			msh.Verts = append(msh.Verts, &Vert{Id: vid(i, j), C: x})
		}
	}

	// cells
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			a, b, c, d := vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)
			lower := &Cell{Id: len(msh.Cells), Tag: -1, Type: "tri3", Verts: []int{a, b, c}, FTags: []Btag{Free, Free, Free}}
			if j == 0 {
				lower.FTags[0] = geo.Tags[0]
			}
			if i == n-1 {
				lower.FTags[1] = geo.Tags[1]
			}
			msh.Cells = append(msh.Cells, lower)
			upper := &Cell{Id: len(msh.Cells), Tag: -1, Type: "tri3", Verts: []int{a, c, d}, FTags: []Btag{Free, Free, Free}}
			if j == m-1 {
				upper.FTags[1] = geo.Tags[2]
			}
			if i == 0 {
				upper.FTags[2] = geo.Tags[3]
			}
			msh.Cells = append(msh.Cells, upper)
		}
	}

	// derived data
	err = msh.Init()
	if err != nil {
		return nil, err
	}
	return
}

// Generate reads the mesh file
func (o *FileGen) Generate(geo *Geometry, maxh float64) (msh *Mesh, err error) {

	// read
	op := "inp.FileGen"
	if geo == nil {
		return nil, errs.New(errs.MeshGeneration, op, "geometry is missing")
	}
	msh, err = ReadMsh(o.Dir, o.Fn)
	if err != nil {
		return nil, err
	}

	// domain
	tol := Ztol * math.Max(1, geo.size())
	if a, b := msh.Area(), geo.Area(); math.Abs(a-b) > tol*math.Max(1, math.Abs(b)) {
		return nil, errs.New(errs.MeshGeneration, op, "area of mesh (%g) does not match area of geometry (%g)", a, b)
	}

	// tagged facets must lie on edges with the same tag
	for tag, pairs := range msh.FaceTag2cells {
		for _, pair := range pairs {
			for _, l := range pair.C.Shp.FaceLocalVerts[pair.Fid] {
				x := msh.Verts[pair.C.Verts[l]].C
				if !geo.onEdgeWithTag(x, tag, tol) {
					return nil, errs.New(errs.MeshGeneration, op, "vertex %d of cell %d is tagged %q but does not lie on a %q edge", pair.C.Verts[l], pair.C.Id, tag, tag)
				}
			}
		}
	}
	return
}

// onEdgeWithTag tells whether x lies on any edge carrying tag
func (o *Geometry) onEdgeWithTag(x []float64, tag Btag, tol float64) bool {
	for k, t := range o.Tags {
		if t != tag {
			continue
		}
		a, b := o.Edge(k)
		l := o.EdgeLen(k)
		dist := math.Abs(cross(a, b, x)) / l
		proj := ((x[0]-a[0])*(b[0]-a[0]) + (x[1]-a[1])*(b[1]-a[1])) / l
		if dist <= tol && proj >= -tol && proj <= l+tol {
			return true
		}
	}
	return false
}

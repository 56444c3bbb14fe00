// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// constants
const Ztol = 1e-7

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag
	C   []float64 `json:"c"`   // coordinates (size==2)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    `json:"id"`    // id
	Tag   int    `json:"tag"`   // tag
	Type  string `json:"type"`  // geometry type; e.g. "tri3"
	Verts []int  `json:"verts"` // vertices
	FTags []Btag `json:"ftags"` // edge tags

	// derived
	Shp *shp.Shape `json:"-"` // shape structure
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a triangular mesh for FE analyses. It is immutable after Init
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	FnamePath  string  `json:"-"` // complete filename path
	Ndim       int     `json:"-"` // space dimension
	Xmin, Xmax float64 `json:"-"` // min and max x-coordinate
	Ymin, Ymax float64 `json:"-"` // min and max y-coordinate

	// derived: maps
	FaceTag2cells map[Btag][]CellFaceId `json:"-"` // face tag => set of cells
	FaceTag2verts map[Btag][]int        `json:"-"` // face tag => vertices on tagged face
	Vert2cells    [][]*Cell             `json:"-"` // vertex id => cells sharing it
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// read file
	o = new(Mesh)
	o.FnamePath = filepath.Join(dir, fn)
	b, err := os.ReadFile(o.FnamePath)
	if err != nil {
		return nil, errs.Wrap(errs.MeshGeneration, "inp.ReadMsh", err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, errs.New(errs.MeshGeneration, "inp.ReadMsh", "cannot decode %q: %v", o.FnamePath, err)
	}

	// derived data
	err = o.Init()
	if err != nil {
		return nil, err
	}
	return
}

// Init checks the mesh and computes derived data
func (o *Mesh) Init() (err error) {

	// check
	op := "inp.Mesh.Init"
	if len(o.Verts) < 3 {
		return errs.New(errs.MeshGeneration, op, "at least 3 vertices are required; %d is invalid", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return errs.New(errs.MeshGeneration, op, "at least 1 cell is required")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin, o.Xmax = math.Inf(1), math.Inf(-1)
	o.Ymin, o.Ymax = math.Inf(1), math.Inf(-1)
	for i, v := range o.Verts {
		if v.Id != i {
			return errs.New(errs.MeshGeneration, op, "vertex ids must be sequential. vertex %d has id %d", i, v.Id)
		}
		if len(v.C) != 2 {
			return errs.New(errs.MeshGeneration, op, "vertex %d must have 2 coordinates; %d is invalid", i, len(v.C))
		}
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
	}

	// cells
	o.FaceTag2cells = make(map[Btag][]CellFaceId)
	o.FaceTag2verts = make(map[Btag][]int)
	o.Vert2cells = make([][]*Cell, len(o.Verts))
	for i, c := range o.Cells {

		// check id and type
		if c.Id != i {
			return errs.New(errs.MeshGeneration, op, "cell ids must be sequential. cell %d has id %d", i, c.Id)
		}
		if c.Type != "tri3" {
			return errs.New(errs.MeshGeneration, op, "cell %d: only \"tri3\" cells are supported; %q is invalid", i, c.Type)
		}
		c.Shp = shp.Get(c.Type)
		if len(c.Verts) != c.Shp.Nverts {
			return errs.New(errs.MeshGeneration, op, "cell %d must have %d vertices; %d is invalid", i, c.Shp.Nverts, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return errs.New(errs.MeshGeneration, op, "cell %d refers to vertex %d which does not exist", i, v)
			}
			o.Vert2cells[v] = append(o.Vert2cells[v], c)
		}
		if c.FTags == nil {
			c.FTags = make([]Btag, len(c.Shp.FaceLocalVerts))
		}
		if len(c.FTags) != len(c.Shp.FaceLocalVerts) {
			return errs.New(errs.MeshGeneration, op, "cell %d must have %d edge tags; %d is invalid", i, len(c.Shp.FaceLocalVerts), len(c.FTags))
		}

		// orientation
		if area := o.CellArea(c); area <= 0 {
			return errs.New(errs.MeshGeneration, op, "cell %d is degenerate or clockwise (area = %g)", i, area)
		}

		// face tags
		for fid, ftag := range c.FTags {
			if ftag == Free {
				continue
			}
			o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, fid})
			for _, l := range c.Shp.FaceLocalVerts[fid] {
				o.FaceTag2verts[ftag] = append(o.FaceTag2verts[ftag], c.Verts[l])
			}
		}
	}

	// every vertex belongs to a cell
	for v, cells := range o.Vert2cells {
		if len(cells) == 0 {
			return errs.New(errs.MeshGeneration, op, "vertex %d is not used by any cell", v)
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = utl.IntUnique(verts)
	}
	return
}

// CellArea returns the signed area of a cell
func (o *Mesh) CellArea(c *Cell) float64 {
	a, b, d := o.Verts[c.Verts[0]].C, o.Verts[c.Verts[1]].C, o.Verts[c.Verts[2]].C
	return ((b[0]-a[0])*(d[1]-a[1]) - (b[1]-a[1])*(d[0]-a[0])) / 2
}

// CellCoords returns the coordinates matrix x[ndim][nverts] of a cell
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = utl.Alloc(o.Ndim, len(c.Verts))
	for j, v := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			x[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// Area returns the total area of cells
func (o *Mesh) Area() (a float64) {
	for _, c := range o.Cells {
		a += o.CellArea(c)
	}
	return
}

// MaxEdge returns the longest cell edge
func (o *Mesh) MaxEdge() (h float64) {
	for _, c := range o.Cells {
		for _, lv := range c.Shp.FaceLocalVerts {
			a, b := o.Verts[c.Verts[lv[0]]].C, o.Verts[c.Verts[lv[1]]].C
			h = utl.Max(h, math.Hypot(b[0]-a[0], b[1]-a[1]))
		}
	}
	return
}

// WriteMsh writes the mesh in JSON format
func (o *Mesh) WriteMsh(dir, fn string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("WriteMsh failed: %v", r)
		}
	}()
	io.WriteFileD(dir, fn, bytes.NewBufferString(o.String()))
	return
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%q", x.Label())
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
